package mq

import "time"

const MessageSource = "FTM-ANALYZER"

type Message struct {
	Data   interface{} `json:"data"`
	Source string      `json:"source"`
}

type MessageOptions struct {
	Qos      byte          `json:"qos"`
	Retained bool          `json:"retained"`
	Timeout  time.Duration `json:"timeout"`
	Source   string        `json:"source"`
}

func DefaultMessageOptions() *MessageOptions {
	return &MessageOptions{
		Qos:      1,
		Retained: true,
		Timeout:  5 * time.Second,
		Source:   MessageSource,
	}
}
