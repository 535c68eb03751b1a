package mq

import (
	"context"
	"encoding/json"
	"errors"
	"ftm-analyzer/internal/config"
	"ftm-analyzer/internal/models"
	"github.com/rs/zerolog"
	"sync"
	"testing"
	"time"
)

type published struct {
	topic string
	data  interface{}
}

type fakeClient struct {
	messages []published
	failOn   string
}

func (f *fakeClient) PublishJson(topic string, data interface{}) error {
	if topic == f.failOn {
		return errors.New("broker unavailable")
	}
	f.messages = append(f.messages, published{topic: topic, data: data})
	return nil
}

func (f *fakeClient) Connect(ctx context.Context) error { return nil }

func (f *fakeClient) Disconnect(ctx context.Context) {}

func TestTopicManagerBuildsAndExtracts(t *testing.T) {
	topics := NewTopicManager("ftm/analysis/")

	advisory := topics.GetAdvisoryTopic("run-42")
	if advisory != "ftm/analysis/v1/advisories/run-42" {
		t.Fatalf("unexpected advisory topic %s", advisory)
	}
	id, err := topics.ExtractRunId(advisory)
	if err != nil || id != "run-42" {
		t.Fatalf("expected run-42, got %q (%v)", id, err)
	}

	summary := topics.GetSummaryTopic("AP2-STA2")
	flow, err := topics.ExtractFlow(summary)
	if err != nil || flow != "AP2-STA2" {
		t.Fatalf("expected AP2-STA2, got %q (%v)", flow, err)
	}

	if _, err := topics.ExtractRunId("other/v1/advisories/x"); err == nil {
		t.Fatalf("expected an error for a foreign topic")
	}
}

func TestAdvisoryPublisherPublishesAdvisoryAndSummaries(t *testing.T) {
	client := &fakeClient{}
	publisher := NewAdvisoryPublisher(client, NewTopicManager("ftm/analysis"), zerolog.Nop())

	run := &models.RunExport{
		RunID:    "run-1",
		Advisory: models.Advisory{Status: models.AdvisoryNoIssues},
		Flows: []models.Aggregate{
			{Label: "AP1-STA1", Count: 2},
			{Label: "AP2-STA2", Count: 4},
		},
	}

	if err := publisher.Export(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(client.messages))
	}
	if client.messages[0].topic != "ftm/analysis/v1/advisories/run-1" {
		t.Fatalf("expected the advisory first, got %s", client.messages[0].topic)
	}

	advisory, ok := client.messages[0].data.(models.AdvisoryMessage)
	if !ok {
		t.Fatalf("expected an AdvisoryMessage, got %T", client.messages[0].data)
	}
	payload, err := json.Marshal(advisory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded["status"] != "no_issues" {
		t.Fatalf("expected no_issues status, got %v", decoded["status"])
	}
	if recs, ok := decoded["recommendations"].([]interface{}); !ok || len(recs) != 0 {
		t.Fatalf("expected an empty recommendation list, got %v", decoded["recommendations"])
	}

	if client.messages[2].topic != "ftm/analysis/v1/summaries/AP2-STA2" {
		t.Fatalf("unexpected summary topic %s", client.messages[2].topic)
	}
}

func TestAdvisoryPublisherReportsFailures(t *testing.T) {
	client := &fakeClient{failOn: "ftm/analysis/v1/advisories/run-1"}
	publisher := NewAdvisoryPublisher(client, NewTopicManager("ftm/analysis"), zerolog.Nop())

	err := publisher.Export(context.Background(), &models.RunExport{RunID: "run-1"})
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestEncodeMessageWrapsData(t *testing.T) {
	payload, err := EncodeMessage(map[string]int{"count": 3}, MessageSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var msg struct {
		Data   map[string]int `json:"data"`
		Source string         `json:"source"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Source != MessageSource || msg.Data["count"] != 3 {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestAdvisoryPublisherRejectsUnroutableLabels(t *testing.T) {
	cases := []struct {
		name string
		run  *models.RunExport
	}{
		{"slash in flow", &models.RunExport{RunID: "run-1", Flows: []models.Aggregate{{Label: "AP1/STA1", Count: 1}}}},
		{"wildcard in flow", &models.RunExport{RunID: "run-1", Flows: []models.Aggregate{{Label: "AP#1", Count: 1}}}},
		{"wildcard in run id", &models.RunExport{RunID: "run+1"}},
		{"empty run id", &models.RunExport{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			client := &fakeClient{}
			publisher := NewAdvisoryPublisher(client, NewTopicManager("ftm/analysis"), zerolog.Nop())

			if err := publisher.Export(context.Background(), c.run); err == nil {
				t.Fatalf("expected an error")
			}
			for _, msg := range client.messages {
				if msg.topic != "ftm/analysis/v1/advisories/run-1" {
					t.Fatalf("unexpected publish to %s", msg.topic)
				}
			}
		})
	}
}

func TestClientConnectionStateIsSafeForCallbacks(t *testing.T) {
	client := NewClient(config.MQTTConfig{
		Host:           "localhost",
		Port:           1883,
		ClientID:       "ftm-analyzer-test",
		KeepAlive:      60,
		ConnectTimeout: time.Second,
	}, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			client.onConnect(nil)
			client.onConnectionLost(nil, errors.New("reset"))
		}()
		go func() {
			defer wg.Done()
			_ = client.IsConnected()
		}()
	}
	wg.Wait()

	if client.IsConnected() {
		t.Fatalf("expected a client without a broker session to report disconnected")
	}
	if err := client.PublishJson("ftm/analysis/v1/advisories/x", map[string]int{}); err == nil {
		t.Fatalf("expected publishing without a connection to fail")
	}
}
