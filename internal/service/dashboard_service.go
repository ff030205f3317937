package service

import (
	"context"
	"fmt"

	"github.com/phrazzld/pawscout-api/internal/domain"
)

// Counter reports the number of stored records of one kind. Every store
// satisfies it.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// DashboardSources are the stores summarized on the admin dashboard.
type DashboardSources struct {
	Accounts      Counter
	Animals       Counter
	Applications  Counter
	Volunteers    Counter
	Messages      Counter
	Subscriptions Counter
}

// DashboardStats holds the record counts.
type DashboardStats struct {
	Users         int64
	Animals       int64
	Adoptions     int64
	Volunteers    int64
	Messages      int64
	Subscriptions int64
}

// Dashboard is the summary shown to an administrator.
type Dashboard struct {
	Greeting string
	Stats    DashboardStats
}

// DashboardService builds the admin dashboard.
type DashboardService struct {
	sources DashboardSources
}

// NewDashboardService creates a DashboardService. Every source is required.
func NewDashboardService(sources DashboardSources) (*DashboardService, error) {
	for name, c := range map[string]Counter{
		"accounts":      sources.Accounts,
		"animals":       sources.Animals,
		"applications":  sources.Applications,
		"volunteers":    sources.Volunteers,
		"messages":      sources.Messages,
		"subscriptions": sources.Subscriptions,
	} {
		if c == nil {
			return nil, fmt.Errorf("%s counter cannot be nil", name)
		}
	}
	return &DashboardService{sources: sources}, nil
}

type counted struct {
	name string
	src  Counter
	dst  *int64
}

// Summary greets admin by name and counts every record kind.
func (s *DashboardService) Summary(ctx context.Context, admin *domain.Account) (*Dashboard, error) {
	d := &Dashboard{Greeting: fmt.Sprintf("Welcome to admin dashboard, %s!", admin.Name)}

	for _, c := range []counted{
		{"users", s.sources.Accounts, &d.Stats.Users},
		{"animals", s.sources.Animals, &d.Stats.Animals},
		{"adoptions", s.sources.Applications, &d.Stats.Adoptions},
		{"volunteers", s.sources.Volunteers, &d.Stats.Volunteers},
		{"messages", s.sources.Messages, &d.Stats.Messages},
		{"subscriptions", s.sources.Subscriptions, &d.Stats.Subscriptions},
	} {
		n, err := c.src.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
		*c.dst = n
	}
	return d, nil
}
