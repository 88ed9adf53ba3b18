package remote

import (
	"context"

	applog "github.com/elpatron68/tasklist-web/internal/log"
)

// Probe prüft beim Start, ob der Task-Store erreichbar ist. Ein Fehler wird
// nur geloggt; der Store darf später hochkommen.
func Probe(ctx context.Context, c *Client) error {
	tasks, err := c.List(ctx)
	if err != nil {
		applog.Warnf("task store %s not ready (%s): %v", c.Endpoint(), Kind(err), err)
		return err
	}
	applog.Infof("task store %s reachable, %d task(s)", c.Endpoint(), len(tasks))
	return nil
}
