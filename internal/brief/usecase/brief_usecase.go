package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	caldomain "briefdesk-backend/internal/calendar/domain"
	emaildomain "briefdesk-backend/internal/email/domain"
	pipelinedomain "briefdesk-backend/internal/pipeline/domain"
	taskdomain "briefdesk-backend/internal/task/domain"
)

const (
	maxBriefEmails = 10
	maxBriefTasks  = 5
	maxBriefDeals  = 4
	emailFetchSize = 20
)

// briefUsecase implements BriefUsecase
type briefUsecase struct {
	emails EmailSource
	events EventSource
	tasks  TaskSource
	deals  DealSource
}

// NewBriefUsecase creates a new instance of briefUsecase
func NewBriefUsecase(emails EmailSource, events EventSource, tasks TaskSource, deals DealSource) BriefUsecase {
	return &briefUsecase{
		emails: emails,
		events: events,
		tasks:  tasks,
		deals:  deals,
	}
}

// BuildDailyBrief fans out to the four sources in one concurrent batch.
// Adapter failures (email, calendar) degrade to empty collections with a log
// line; local storage reads are expected to succeed, so their errors
// propagate. Concurrent brief requests are independent and share nothing.
func (u *briefUsecase) BuildDailyBrief(ctx context.Context, userID string, syncTrello bool) (*Brief, error) {
	if syncTrello {
		if created, err := u.tasks.SyncTrello(ctx, userID); err != nil {
			log.Printf("[Brief] Trello sync failed: %v", err)
		} else if created > 0 {
			log.Printf("[Brief] Trello sync created %d tasks", created)
		}
	}

	var (
		emails []emaildomain.Email
		events []caldomain.Event
		tasks  []*taskdomain.Task
		deals  []*pipelinedomain.Deal

		tasksErr error
		dealsErr error
	)

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		var err error
		emails, err = u.emails.FetchRecentEmails(ctx, userID, emailFetchSize)
		if err != nil {
			log.Printf("[Brief] Email fetch failed, continuing without: %v", err)
			emails = nil
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		events, err = u.events.FetchTodayEvents(ctx, userID)
		if err != nil {
			log.Printf("[Brief] Calendar fetch failed, continuing without: %v", err)
			events = nil
		}
	}()

	go func() {
		defer wg.Done()
		tasks, tasksErr = u.tasks.GetUserTasks(userID)
	}()

	go func() {
		defer wg.Done()
		deals, dealsErr = u.deals.FindActiveByUserID(userID)
	}()

	wg.Wait()

	if tasksErr != nil {
		return nil, tasksErr
	}
	if dealsErr != nil {
		return nil, dealsErr
	}

	now := time.Now()
	priorityEmails := selectPriorityEmails(emails)
	pendingTasks := selectPendingTasks(tasks)

	brief := &Brief{
		Date: now.Format(time.RFC3339),
		Metrics: Metrics{
			MeetingsToday:  len(events),
			PriorityEmails: len(priorityEmails),
			TasksDue:       len(pendingTasks),
			StaleDeals:     countStaleDeals(deals, now),
		},
		Emails: capEmails(priorityEmails, maxBriefEmails),
		Events: events,
		Tasks:  capTasks(pendingTasks, maxBriefTasks),
		Deals:  capDeals(deals, maxBriefDeals),
	}

	if brief.Emails == nil {
		brief.Emails = []emaildomain.Email{}
	}
	if brief.Events == nil {
		brief.Events = []caldomain.Event{}
	}
	if brief.Tasks == nil {
		brief.Tasks = []*taskdomain.Task{}
	}
	if brief.Deals == nil {
		brief.Deals = []*pipelinedomain.Deal{}
	}

	return brief, nil
}

// selectPriorityEmails keeps emails that are high priority or still unread.
func selectPriorityEmails(emails []emaildomain.Email) []emaildomain.Email {
	var out []emaildomain.Email
	for _, e := range emails {
		if e.Priority == emaildomain.PriorityHigh || e.Unread {
			out = append(out, e)
		}
	}
	return out
}

func selectPendingTasks(tasks []*taskdomain.Task) []*taskdomain.Task {
	var out []*taskdomain.Task
	for _, t := range tasks {
		if t.Status == taskdomain.TaskStatusPending {
			out = append(out, t)
		}
	}
	return out
}

// countStaleDeals applies the seven-day staleness rule. The metric counts
// every stale deal even though the emitted deal list is capped by recency.
func countStaleDeals(deals []*pipelinedomain.Deal, now time.Time) int {
	n := 0
	for _, d := range deals {
		if d.IsStale(now) {
			n++
		}
	}
	return n
}

func capEmails(emails []emaildomain.Email, limit int) []emaildomain.Email {
	if len(emails) > limit {
		return emails[:limit]
	}
	return emails
}

func capTasks(tasks []*taskdomain.Task, limit int) []*taskdomain.Task {
	if len(tasks) > limit {
		return tasks[:limit]
	}
	return tasks
}

// capDeals returns the most recently updated deals; the repository already
// orders by updated_at descending.
func capDeals(deals []*pipelinedomain.Deal, limit int) []*pipelinedomain.Deal {
	if len(deals) > limit {
		return deals[:limit]
	}
	return deals
}
