// Command smoke probes a running booking API instance and reports per-route
// status and latency. Intended for post-deploy checks; exits non-zero when a
// critical route fails.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type probe struct {
	Method   string
	Path     string
	Want     int
	Critical bool
}

type result struct {
	Probe    probe
	Status   int
	Duration time.Duration
	Err      error
}

func main() {
	var (
		base    string
		prefix  string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&prefix, "prefix", "/api/v1", "API route prefix")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	today := time.Now().Format("2006-01-02")
	probes := []probe{
		{Method: http.MethodGet, Path: "/health", Want: http.StatusOK, Critical: true},
		{Method: http.MethodGet, Path: "/ready", Want: http.StatusOK, Critical: true},
		{Method: http.MethodGet, Path: prefix + "/classes?date=" + today, Want: http.StatusOK, Critical: true},
		{Method: http.MethodGet, Path: prefix + "/classes", Want: http.StatusBadRequest},
		{Method: http.MethodGet, Path: prefix + "/availability?classId=" + today + "-0700-group", Want: http.StatusOK, Critical: true},
		{Method: http.MethodGet, Path: prefix + "/availability", Want: http.StatusBadRequest},
		{Method: http.MethodGet, Path: prefix + "/webhooks/wompi", Want: http.StatusOK},
	}

	client := &http.Client{Timeout: timeout}
	failures := 0

	for _, p := range probes {
		res := run(client, base, p)
		report(res)
		if res.Err != nil || res.Status != p.Want {
			if p.Critical {
				failures++
			}
		}
	}

	if failures > 0 {
		fmt.Printf("critical failures: %d\n", failures)
		os.Exit(1)
	}
	fmt.Println("all critical probes passed")
}

func run(client *http.Client, base string, p probe) result {
	url := strings.TrimRight(base, "/") + p.Path

	req, err := http.NewRequest(p.Method, url, nil)
	if err != nil {
		return result{Probe: p, Err: err}
	}

	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)
	if err != nil {
		return result{Probe: p, Duration: duration, Err: err}
	}
	defer resp.Body.Close()

	// Drain so connections get reused; body content is only sanity-checked
	// for JSON shape on 2xx responses.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 300 && len(body) > 0 && !json.Valid(body) {
		return result{Probe: p, Status: resp.StatusCode, Duration: duration, Err: fmt.Errorf("non-JSON body")}
	}

	return result{Probe: p, Status: resp.StatusCode, Duration: duration}
}

func report(res result) {
	status := "ok"
	if res.Err != nil {
		status = "error: " + res.Err.Error()
	} else if res.Status != res.Probe.Want {
		status = fmt.Sprintf("want %d got %d", res.Probe.Want, res.Status)
	}
	fmt.Printf("%-6s %-60s %4d %8s %s\n",
		res.Probe.Method, res.Probe.Path, res.Status, res.Duration.Round(time.Millisecond), status)
}
