//go:build integration

package steps

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

const streamWait = 5 * time.Second

// summaryStream reads "summary" events from the live dashboard endpoint.
type summaryStream struct {
	cancel    context.CancelFunc
	summaries chan map[string]any
	done      chan struct{}
	latest    map[string]any
}

func registerStreamSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^I am watching the summary of "([^"]*)"$`, t.iAmWatchingTheSummaryOf)
	ctx.Then(`^the watched summary field "([^"]*)" should become "([^"]*)"$`, t.theWatchedSummaryFieldShouldBecome)
}

func (t *testContext) iAmWatchingTheSummaryOf(month string) error {
	t.closeStream()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		t.server.URL+"/api/v1/dashboard/summary/stream?month="+t.replacePlaceholders(month), nil)
	if err != nil {
		cancel()
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+t.accessToken)

	// The scenario client has a timeout that would cut the stream.
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	stream := &summaryStream{
		cancel:    cancel,
		summaries: make(chan map[string]any, 16),
		done:      make(chan struct{}),
	}
	go stream.read(resp)
	t.stream = stream

	select {
	case stream.latest = <-stream.summaries:
		return nil
	case <-time.After(streamWait):
		return fmt.Errorf("no initial summary received")
	}
}

func (s *summaryStream) read(resp *http.Response) {
	defer close(s.done)
	defer resp.Body.Close()

	var event string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:") && event == "summary":
			var summary map[string]any
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data:")), &summary); err != nil {
				continue
			}
			select {
			case s.summaries <- summary:
			default:
			}
		case line == "":
			event = ""
		}
	}
}

func (t *testContext) theWatchedSummaryFieldShouldBecome(field, expected string) error {
	if t.stream == nil {
		return fmt.Errorf("no summary stream is open")
	}

	expected = t.replacePlaceholders(expected)
	matches := func(summary map[string]any) bool {
		value := getFieldValue(summary, field)
		return value != nil && formatValue(value) == expected
	}
	if matches(t.stream.latest) {
		return nil
	}

	deadline := time.After(streamWait)
	for {
		select {
		case summary := <-t.stream.summaries:
			t.stream.latest = summary
			if matches(summary) {
				return nil
			}
		case <-t.stream.done:
			return fmt.Errorf("stream closed before %s became %s", field, expected)
		case <-deadline:
			return fmt.Errorf("field %s expected to become %s, last value %v", field, expected, getFieldValue(t.stream.latest, field))
		}
	}
}

func (t *testContext) closeStream() {
	if t.stream == nil {
		return
	}
	t.stream.cancel()
	<-t.stream.done
	t.stream = nil
}
