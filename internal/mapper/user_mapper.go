package mapper

import (
	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	return &entity.User{
		Id:           u.Id,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	return &model.User{
		Id:           u.Id,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (m *UserMapper) InviteCodeToEntity(c *model.InviteCode) *entity.InviteCode {
	if c == nil {
		return nil
	}

	return &entity.InviteCode{
		Code:      c.Code,
		UsedBy:    c.UsedBy,
		CreatedAt: c.CreatedAt,
		UsedAt:    c.UsedAt,
	}
}

func (m *UserMapper) InviteCodeToModel(c *entity.InviteCode) *model.InviteCode {
	if c == nil {
		return nil
	}

	return &model.InviteCode{
		Code:      c.Code,
		UsedBy:    c.UsedBy,
		CreatedAt: c.CreatedAt,
		UsedAt:    c.UsedAt,
	}
}
