package memory

import (
	"time"

	"tsai-chat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// JobRepository keeps ingestion job state in process memory. Finished jobs
// expire after an hour; the purge loop sweeps every 10 minutes.
type JobRepository struct {
	cache *cache.Cache
}

func NewJobRepository() *JobRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &JobRepository{
		cache: c,
	}
}

func (r *JobRepository) Save(job *store.IngestionJob) {
	job.UpdatedAt = time.Now()
	r.cache.Set(job.ID, job, cache.DefaultExpiration)
}

func (r *JobRepository) Get(jobID string) (*store.IngestionJob, bool) {
	if x, found := r.cache.Get(jobID); found {
		return x.(*store.IngestionJob), true
	}
	return nil, false
}

func (r *JobRepository) Delete(jobID string) {
	r.cache.Delete(jobID)
}
