package webclient

import (
	"github.com/raysh454/toru/internal/logging"
)

// The default backends register themselves so New works out of the box.
// Tests register additional backends through Register.
func init() {
	Register(BackendNetHTTP, func(cfg Config, logger logging.Logger) (WebClient, error) {
		return NewNetHTTPClient(cfg, logger, nil)
	})

	Register(BackendChromedp, func(cfg Config, logger logging.Logger) (WebClient, error) {
		return NewChromedpClient(cfg, logger)
	})
}
