package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var obsCmd = &cobra.Command{
	Use:   "obs",
	Short: "Observability commands (query VictoriaMetrics)",
}

var vmsingleURL string

type VMResponse struct {
	Status string `json:"status"`
	Data   struct {
		Result []struct {
			Metric map[string]string `json:"metric"`
			Value  []interface{}     `json:"value"`
		} `json:"result"`
	} `json:"data"`
}

type namedQuery struct {
	name  string
	query string
}

var obsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show request and upstream summary metrics",
	Run: func(cmd *cobra.Command, args []string) {
		printQueries(cmd.Context(), os.Stdout, []namedQuery{
			{"HTTP Request Rate", `sum(rate(audit_http_requests_total[5m]))`},
			{"HTTP Error Rate", `sum(rate(audit_http_requests_total{code=~"4..|5.."}[5m])) / sum(rate(audit_http_requests_total[5m])) * 100`},
			{"Upstream Success Rate", `sum(rate(audit_upstream_requests_total{code="200"}[5m])) / sum(rate(audit_upstream_requests_total[5m])) * 100`},
			{"RPC Request Rate", `sum(rate(audit_rpc_requests_total[5m]))`},
			{"Active Requests", `audit_active_requests`},
		})
	},
}

var obsLatencyCmd = &cobra.Command{
	Use:   "latency",
	Short: "Show latency metrics",
	Run: func(cmd *cobra.Command, args []string) {
		printQueries(cmd.Context(), os.Stdout, []namedQuery{
			{"HTTP P50", `histogram_quantile(0.5, sum(rate(audit_http_request_duration_seconds_bucket[5m])) by (le))`},
			{"HTTP P95", `histogram_quantile(0.95, sum(rate(audit_http_request_duration_seconds_bucket[5m])) by (le))`},
			{"HTTP P99", `histogram_quantile(0.99, sum(rate(audit_http_request_duration_seconds_bucket[5m])) by (le))`},
			{"Upstream P95", `histogram_quantile(0.95, sum(rate(audit_upstream_duration_seconds_bucket[5m])) by (le))`},
		})
	},
}

var obsUpstreamCmd = &cobra.Command{
	Use:   "upstream",
	Short: "Show property source reads by status",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := queryVM(cmd.Context(), vmsingleURL, `sum by (source, code) (rate(audit_upstream_requests_total[5m]))`)
		if err != nil {
			fmt.Println("error: " + err.Error())
			return
		}
		if len(res.Data.Result) == 0 {
			fmt.Println("no data")
			return
		}
		for _, r := range res.Data.Result {
			fmt.Printf("%s %s: %s\n", r.Metric["source"], r.Metric["code"], sampleValue(r.Value))
		}
	},
}

func printQueries(ctx context.Context, out io.Writer, queries []namedQuery) {
	for _, q := range queries {
		fmt.Fprintf(out, "%s: %s\n", q.name, queryValue(ctx, vmsingleURL, q.query))
	}
}

// queryValue returns the first sample of an instant query as text.
func queryValue(ctx context.Context, baseURL, query string) string {
	res, err := queryVM(ctx, baseURL, query)
	if err != nil {
		return "error: " + err.Error()
	}
	if len(res.Data.Result) == 0 {
		return "no data"
	}
	return sampleValue(res.Data.Result[0].Value)
}

func queryVM(ctx context.Context, baseURL, query string) (*VMResponse, error) {
	endpoint := strings.TrimRight(baseURL, "/") + "/api/v1/query?query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var vmResp VMResponse
	if err := json.NewDecoder(resp.Body).Decode(&vmResp); err != nil {
		return nil, fmt.Errorf("parse error")
	}
	return &vmResp, nil
}

func sampleValue(v []interface{}) string {
	if len(v) >= 2 {
		return fmt.Sprintf("%v", v[1])
	}
	return "no value"
}

func init() {
	obsCmd.PersistentFlags().StringVar(&vmsingleURL, "vm-url", "http://localhost:8428", "VictoriaMetrics URL")
	obsCmd.AddCommand(obsSummaryCmd, obsLatencyCmd, obsUpstreamCmd)
	rootCmd.AddCommand(obsCmd)
}
