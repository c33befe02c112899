package main

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lzjever/project-audit/internal/jira"
	"github.com/lzjever/project-audit/internal/panel"
	"github.com/lzjever/project-audit/internal/rpc"
	"github.com/lzjever/project-audit/internal/tui"
)

var (
	projectID string
	jiraURL   string
	jiraEmail string
	jiraToken string
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Open the interactive audit table",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		resolver, err := contextResolver()
		if err != nil {
			return err
		}
		data, closeFn, err := dataSource()
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := cmd.Context()
		m := tui.New(ctx, resolver, data, log)
		if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
			log.Error("panel stopped", zap.Error(err))
			return err
		}
		return nil
	},
}

// dataSource feeds the table from audit-rpc when --grpc-addr is set and from
// audit-api otherwise. An error envelope from audit-api shows as no users.
func dataSource() (panel.DataSource, func(), error) {
	if grpcAddr != "" {
		c, err := rpc.NewClient(grpcAddr)
		if err != nil {
			return nil, nil, err
		}
		return panel.RawSource(c.GetAuditData), func() { c.Close() }, nil
	}
	return panel.NewAPIClient(apiURL, nil), func() {}, nil
}

// contextResolver prefers an explicit --project over host server metadata.
func contextResolver() (panel.ContextResolver, error) {
	if projectID != "" {
		return panel.StaticResolver(projectID), nil
	}
	if jiraURL == "" {
		return nil, errors.New("either --project or --jira-url is required")
	}
	return panel.ServerInfoResolver{Host: jira.New(jiraURL, jiraEmail, jiraToken)}, nil
}

func init() {
	panelCmd.Flags().StringVarP(&projectID, "project", "p", "", "Project id; skips server info lookup")
	panelCmd.Flags().StringVar(&jiraURL, "jira-url", os.Getenv("JIRA_BASE_URL"), "Jira base URL used to resolve the project")
	panelCmd.Flags().StringVar(&jiraEmail, "jira-email", os.Getenv("JIRA_EMAIL"), "Jira account email")
	panelCmd.Flags().StringVar(&jiraToken, "jira-token", os.Getenv("JIRA_API_TOKEN"), "Jira API token")
	rootCmd.AddCommand(panelCmd)
}
