package school

import (
	"context"

	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

// Summary counts the records of one resource visible to a session.
type Summary struct {
	Resource string         `json:"resource"`
	Title    string         `json:"title"`
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// Dashboard returns a Summary for every resource sess may read, in a fixed order.
func (svc *Service) Dashboard(ctx context.Context, sess user.Session) ([]Summary, error) {
	p := svc.pages
	summaries := make([]Summary, 0, 9)
	for _, summarize := range []func(context.Context, user.Session) (Summary, bool, error){
		summarizer(p.Institutions),
		summarizer(p.Subscriptions),
		summarizer(p.Teachers),
		summarizer(p.Students),
		summarizer(p.Classrooms),
		summarizer(p.Attendance),
		summarizer(p.Fees),
		summarizer(p.Materials),
		summarizer(p.Exams),
	} {
		s, ok, err := summarize(ctx, sess)
		if err != nil {
			return nil, err
		}
		if ok {
			summaries = append(summaries, s)
		}
	}
	return summaries, nil
}

func summarizer[T any](p *listing.Page[T]) func(context.Context, user.Session) (Summary, bool, error) {
	return func(ctx context.Context, sess user.Session) (Summary, bool, error) {
		st, perm := p.StateFor(sess)
		if perm == listing.NoAccess {
			return Summary{}, false, nil
		}
		counts, err := p.CountByStatus(ctx, st)
		if err != nil {
			return Summary{}, false, err
		}
		var total int
		for _, n := range counts {
			total += n
		}
		res := p.Resource()
		return Summary{Resource: res.Name, Title: res.Title, Total: total, ByStatus: counts}, true, nil
	}
}
