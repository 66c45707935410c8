package scheduler

import (
	"context"
	"log"
	"time"

	authusecase "briefdesk-backend/internal/auth/usecase"
	briefusecase "briefdesk-backend/internal/brief/usecase"
	pipelinedomain "briefdesk-backend/internal/pipeline/domain"
	pipelinerepo "briefdesk-backend/internal/pipeline/repository"
)

// job is one fixed-time logging task.
type job struct {
	name string
	// next returns the first firing instant strictly after now.
	next func(now time.Time) time.Time
	run  func()
}

// Scheduler fires fixed wall-clock jobs in a named timezone. All jobs only
// log; none persist anything.
type Scheduler struct {
	briefUsecase briefusecase.BriefUsecase
	dealRepo     pipelinerepo.DealRepository
	users        authusecase.UserService
	loc          *time.Location
	stopChan     chan struct{}
}

// NewScheduler creates a scheduler in the given timezone. An unknown
// timezone name falls back to UTC with a log line.
func NewScheduler(briefUsecase briefusecase.BriefUsecase, dealRepo pipelinerepo.DealRepository, users authusecase.UserService, timezone string) *Scheduler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("[Scheduler] Unknown timezone %q, falling back to UTC: %v", timezone, err)
		loc = time.UTC
	}
	return &Scheduler{
		briefUsecase: briefUsecase,
		dealRepo:     dealRepo,
		users:        users,
		loc:          loc,
		stopChan:     make(chan struct{}),
	}
}

// Start launches one timer loop per job. Each loop is independent; a failure
// in one never affects the others.
func (s *Scheduler) Start() {
	jobs := []job{
		{
			name: "daily-brief",
			next: func(now time.Time) time.Time { return s.nextDaily(now, 7, 30) },
			run:  s.logDailyBrief,
		},
		{
			name: "monday-pipeline",
			next: func(now time.Time) time.Time { return s.nextWeekly(now, time.Monday, 9, 0) },
			run:  s.logActiveDeals,
		},
		{
			name: "friday-pipeline",
			next: func(now time.Time) time.Time { return s.nextWeekly(now, time.Friday, 15, 0) },
			run:  s.logPipelineSnapshot,
		},
	}

	log.Printf("[Scheduler] Starting %d jobs in %s", len(jobs), s.loc)
	for _, j := range jobs {
		go s.loop(j)
	}
}

// Stop gracefully stops all job loops
func (s *Scheduler) Stop() {
	close(s.stopChan)
}

func (s *Scheduler) loop(j job) {
	for {
		now := time.Now().In(s.loc)
		fireAt := j.next(now)
		timer := time.NewTimer(fireAt.Sub(now))

		select {
		case <-timer.C:
			s.runJob(j)
		case <-s.stopChan:
			timer.Stop()
			log.Printf("[Scheduler] Job %s stopped", j.name)
			return
		}
	}
}

// runJob executes a job body, recovering panics so one bad run never kills
// the timer loop.
func (s *Scheduler) runJob(j job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Scheduler] Job %s panicked: %v", j.name, r)
		}
	}()
	j.run()
}

// nextDaily returns the next hh:mm in the scheduler's timezone strictly
// after now.
func (s *Scheduler) nextDaily(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, s.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// nextWeekly returns the next occurrence of weekday at hh:mm strictly after
// now.
func (s *Scheduler) nextWeekly(now time.Time, weekday time.Weekday, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, s.loc)
	offset := (int(weekday) - int(next.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, offset)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

func (s *Scheduler) logDailyBrief() {
	user, err := s.users.EnsureDefaultUser()
	if err != nil {
		log.Printf("[Scheduler] Daily brief: failed to resolve user: %v", err)
		return
	}

	brief, err := s.briefUsecase.BuildDailyBrief(context.Background(), user.ID, false)
	if err != nil {
		log.Printf("[Scheduler] Daily brief failed: %v", err)
		return
	}

	m := brief.Metrics
	log.Printf("[Scheduler] Daily brief: %d meetings, %d priority emails, %d tasks due, %d stale deals",
		m.MeetingsToday, m.PriorityEmails, m.TasksDue, m.StaleDeals)
}

func (s *Scheduler) logActiveDeals() {
	deals, err := s.activeDeals()
	if err != nil {
		log.Printf("[Scheduler] Pipeline check failed: %v", err)
		return
	}
	log.Printf("[Scheduler] Pipeline check: %d active deals", len(deals))
}

func (s *Scheduler) logPipelineSnapshot() {
	deals, err := s.activeDeals()
	if err != nil {
		log.Printf("[Scheduler] Pipeline snapshot failed: %v", err)
		return
	}

	now := time.Now()
	stale := 0
	for _, d := range deals {
		if d.IsStale(now) {
			stale++
		}
	}
	log.Printf("[Scheduler] Pipeline snapshot: %d active deals, %d stale", len(deals), stale)
}

func (s *Scheduler) activeDeals() ([]*pipelinedomain.Deal, error) {
	user, err := s.users.EnsureDefaultUser()
	if err != nil {
		return nil, err
	}
	return s.dealRepo.FindActiveByUserID(user.ID)
}
