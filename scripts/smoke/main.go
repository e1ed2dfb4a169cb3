// Command smoke probes a running horarios-api instance with a fixed target
// list and reports status and latency per endpoint. Intended for deploy
// verification; exits non-zero when any critical target fails.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type target struct {
	Method     string          `json:"method"`
	Path       string          `json:"path"`
	Body       json.RawMessage `json:"body,omitempty"`
	WantStatus int             `json:"wantStatus"`
	Critical   bool            `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

type probe struct {
	Target   target
	Status   int
	Duration time.Duration
	Error    error
}

func main() {
	var (
		baseURL     string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&baseURL, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "smoke", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		probes   []probe
		failures int
	)

	for _, t := range targets {
		p := probeTarget(client, baseURL, t)
		if !p.ok() && t.Critical {
			failures++
		}
		probes = append(probes, p)
	}

	printReport(probes)

	fmt.Printf("Critical failures: %d\n", failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func (p probe) ok() bool {
	if p.Error != nil {
		return false
	}
	want := p.Target.WantStatus
	if want == 0 {
		want = http.StatusOK
	}
	return p.Status == want
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func probeTarget(client *http.Client, base string, tgt target) probe {
	p := probe{Target: tgt}

	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path

	var body *bytes.Reader
	if len(tgt.Body) > 0 {
		body = bytes.NewReader(tgt.Body)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		p.Error = err
		return p
	}
	if len(tgt.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	p.Duration = time.Since(start)
	if err != nil {
		p.Error = err
		return p
	}
	defer resp.Body.Close()

	p.Status = resp.StatusCode
	return p
}

func printReport(probes []probe) {
	for _, p := range probes {
		marker := "ok"
		if !p.ok() {
			marker = "FAIL"
		}
		detail := fmt.Sprintf("status=%d", p.Status)
		if p.Error != nil {
			detail = fmt.Sprintf("error=%v", p.Error)
		}
		fmt.Printf("[%s] %-4s %-40s %s (%s)\n", marker, strings.ToUpper(p.Target.Method), p.Target.Path, detail, p.Duration.Round(time.Millisecond))
	}
}
