package source

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lzjever/project-audit/internal/core"
	"github.com/lzjever/project-audit/internal/jira"
	"github.com/lzjever/project-audit/internal/store"
)

type Config struct {
	Kind        string `envconfig:"AUDIT_SOURCE" default:"jira"`
	PropertyKey string `envconfig:"AUDIT_PROPERTY_KEY" default:"internal-audit"`
	JiraBaseURL string `envconfig:"JIRA_BASE_URL"`
	JiraEmail   string `envconfig:"JIRA_EMAIL"`
	JiraToken   string `envconfig:"JIRA_API_TOKEN"`
	DBDSN       string `envconfig:"AUDIT_DB_DSN"`
}

// Open builds the configured property source. The returned close func
// releases any held resources and is always safe to call.
func Open(ctx context.Context, cfg Config, log *zap.Logger) (core.PropertySource, func(), error) {
	switch cfg.Kind {
	case jira.SourceName, "":
		if cfg.JiraBaseURL == "" {
			return nil, nil, fmt.Errorf("JIRA_BASE_URL is required for the jira source")
		}
		log.Info("using jira property source", zap.String("base_url", cfg.JiraBaseURL))
		return jira.New(cfg.JiraBaseURL, cfg.JiraEmail, cfg.JiraToken), func() {}, nil
	case store.SourceName:
		if cfg.DBDSN == "" {
			return nil, nil, fmt.Errorf("AUDIT_DB_DSN is required for the postgres source")
		}
		pool, err := store.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using postgres property source")
		return store.NewPropertyStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown property source %q", cfg.Kind)
	}
}
