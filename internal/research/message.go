// Package research models the conversation a report lives in: the user
// prompt, the assistant-authored report payload, and follow-up rounds.
// Payloads arrive as JSON from the report backend and are decoded into
// typed records at this boundary; nothing downstream sees raw maps.
package research

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"reportkit/internal/chart"
	"reportkit/internal/report"
)

// ErrNoReport is returned when a conversation or message carries no
// report to parse. Malformed report text is never an error; only a
// missing payload is.
var ErrNoReport = errors.New("no report content")

// Message is one turn of a research conversation.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at,omitempty"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}

// Metadata is the optional backend-attached payload on assistant messages.
type Metadata struct {
	GraphData           *chart.GraphData `json:"graph_data,omitempty"`
	FollowupSuggestions []string         `json:"followup_suggestions,omitempty"`
}

// Addendum pairs a follow-up question with the report that answered it.
type Addendum struct {
	Question string
	Report   Message
	Index    int
}

// ParseReport parses the report text of a message into a document.
// A nil message is the only failure; empty or malformed content still
// parses to a (possibly minimal) document.
func ParseReport(msg *Message) (*report.Document, error) {
	if msg == nil {
		return nil, ErrNoReport
	}
	return report.Parse(msg.Content), nil
}

// Organize splits a conversation into the main report and its addendums.
// The first assistant message is the main report; each later assistant
// message becomes an addendum paired with the user question of the same
// round. Returns nil main when no assistant message exists.
func Organize(messages []Message) (main *Message, addendums []Addendum) {
	var users, assistants []Message
	for _, m := range messages {
		switch m.Role {
		case "user":
			users = append(users, m)
		case "assistant":
			assistants = append(assistants, m)
		}
	}
	if len(assistants) == 0 {
		return nil, nil
	}

	main = &assistants[0]
	for i := 1; i < len(assistants); i++ {
		question := ""
		if i < len(users) {
			question = users[i].Content
		}
		addendums = append(addendums, Addendum{
			Question: question,
			Report:   assistants[i],
			Index:    i,
		})
	}
	return main, addendums
}

// topicStopwords are question scaffolding words excluded from topics.
var topicStopwords = map[string]bool{
	"what": true, "when": true, "where": true, "which": true,
	"about": true, "research": true, "study": true, "analysis": true,
}

// Topics extracts research topic keywords from the user prompts of a
// conversation: words longer than four characters that are not question
// scaffolding, at most three per prompt, capped at max overall.
func Topics(messages []Message, max int) []string {
	var topics []string
	seen := make(map[string]bool)

	for _, m := range messages {
		if m.Role != "user" {
			continue
		}
		added := 0
		for _, word := range strings.Fields(strings.ToLower(m.Content)) {
			if added >= 3 {
				break
			}
			if len(word) <= 4 || topicStopwords[word] {
				continue
			}
			if !seen[word] {
				seen[word] = true
				topics = append(topics, word)
			}
			added++
		}
	}

	if len(topics) > max {
		topics = topics[:max]
	}
	return topics
}

// Stats are aggregate conversation metrics at a 200 wpm reading speed.
type Stats struct {
	Messages    int
	TotalWords  int
	AvgWords    int
	ReadMinutes int
}

// Summarize computes conversation stats over all turns.
func Summarize(messages []Message) Stats {
	s := Stats{Messages: len(messages)}
	for _, m := range messages {
		s.TotalWords += len(strings.Fields(m.Content))
	}
	if len(messages) > 0 {
		s.AvgWords = (s.TotalWords + len(messages)/2) / len(messages)
	}
	s.ReadMinutes = (s.TotalWords + 100) / 200
	return s
}

// Load reads a conversation from disk. JSON input may be a single
// message, an array of messages, or a {"messages": [...]} envelope; any
// other content is treated as raw report markdown and wrapped in a single
// assistant message.
func Load(path string) ([]Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading conversation: %w", err)
	}
	return Decode(data), nil
}

// Decode interprets raw bytes as a conversation; see Load.
func Decode(data []byte) []Message {
	trimmed := strings.TrimSpace(string(data))

	if strings.HasPrefix(trimmed, "[") {
		var msgs []Message
		if err := json.Unmarshal(data, &msgs); err == nil {
			return msgs
		}
	}
	if strings.HasPrefix(trimmed, "{") {
		var envelope struct {
			Messages []Message `json:"messages"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Messages) > 0 {
			return envelope.Messages
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err == nil && msg.Content != "" {
			return []Message{msg}
		}
	}

	return []Message{{Role: "assistant", Content: trimmed}}
}
