package mq

import (
	"fmt"
	"ftm-analyzer/internal/interfaces"
	"regexp"
	"strings"
)

type TopicManager struct {
	BaseTopic string
}

var _ interfaces.ITopicManager = (*TopicManager)(nil)

func NewTopicManager(baseTopic string) *TopicManager {
	return &TopicManager{BaseTopic: baseTopic}
}

const (
	AdvisoryTopicTemplate = "%s/v1/advisories/+"
	SummaryTopicTemplate  = "%s/v1/summaries/+"
)

func (m *TopicManager) GetAdvisoryTopic(runID string) string {
	return strings.Replace(fmt.Sprintf(AdvisoryTopicTemplate, m.GetBaseTopic()), "+", runID, 1)
}

func (m *TopicManager) GetSummaryTopic(flow string) string {
	return strings.Replace(fmt.Sprintf(SummaryTopicTemplate, m.GetBaseTopic()), "+", flow, 1)
}

func (m *TopicManager) buildTopicRegex(template string) *regexp.Regexp {
	pattern := strings.ReplaceAll(template, "%s", regexp.QuoteMeta(m.GetBaseTopic()))
	pattern = strings.ReplaceAll(pattern, "+", "([^/]+)")
	pattern = "^" + pattern + "$"

	return regexp.MustCompile(pattern)
}

func (m *TopicManager) ExtractIdFromTopic(topic, template string) (string, error) {
	regex := m.buildTopicRegex(template)
	matches := regex.FindStringSubmatch(topic)

	if len(matches) < 2 {
		return "", fmt.Errorf("could not extract ID from topic: %s", topic)
	}

	return matches[1], nil
}

func (m *TopicManager) ExtractRunId(topic string) (string, error) {
	return m.ExtractIdFromTopic(topic, AdvisoryTopicTemplate)
}

func (m *TopicManager) ExtractFlow(topic string) (string, error) {
	return m.ExtractIdFromTopic(topic, SummaryTopicTemplate)
}

func (m *TopicManager) GetBaseTopic() string {
	return strings.TrimSuffix(m.BaseTopic, "/")
}
