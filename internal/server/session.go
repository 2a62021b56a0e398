package server

import (
	"github.com/google/uuid"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginelog"
	"github.com/flowtable/compute/internal/ifacecfg"
	"github.com/flowtable/compute/internal/registry"
	"github.com/flowtable/compute/internal/resolve"
	"github.com/flowtable/compute/internal/schedule"
)

// Session holds exactly one DataFrame and its Scheduler for one client:
// sessions are per-client and isolated, each wrapping its own DataFrame
// rather than a shared one.
type Session struct {
	ID        string
	Interface *ifacecfg.Interface
	DataFrame *dataframe.DataFrame
	Scheduler *schedule.Scheduler
}

// NewSession wraps a freshly constructed DataFrame and Interface into a
// new session, building the Scheduler that drives it.
func NewSession(iface *ifacecfg.Interface, df *dataframe.DataFrame, reg *registry.Registry, resolver *resolve.Resolver, log *enginelog.Logger) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Interface: iface,
		DataFrame: df,
		Scheduler: schedule.New(df, reg, resolver, iface.Compute, log),
	}
}
