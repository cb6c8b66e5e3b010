package utils

import (
	"fmt"

	cron "github.com/robfig/cron/v3"
)

// StartScheduler runs job on the cron spec until the returned scheduler is
// stopped.
func StartScheduler(spec string, job func()) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
