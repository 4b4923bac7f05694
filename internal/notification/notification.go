/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/jerry-enebeli/soillab/config"
	"github.com/jerry-enebeli/soillab/internal/request"
	"github.com/sirupsen/logrus"
)

const slackTimeout = 5 * time.Second

type slackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

func slackPayload(project string, err error, at time.Time) slackMessage {
	return slackMessage{Blocks: []slackBlock{
		{Type: "header", Text: &slackText{Type: "plain_text", Text: fmt.Sprintf("Error From %s 🐞", project), Emoji: true}},
		{Type: "section", Fields: []slackText{{Type: "mrkdwn", Text: "*Error:*\n" + err.Error()}}},
		{Type: "section", Fields: []slackText{{Type: "mrkdwn", Text: "*Time:*\n" + at.Format(time.RFC822)}}},
	}}
}

// SlackNotification posts err to the configured Slack webhook.
// Parameters:
// - ctx: The context for the outgoing request. A short timeout is applied on top of it.
// - err: The error to report.
// Returns an error if the configuration cannot be read or the webhook call fails.
// It is a no-op when no webhook is configured.
func SlackNotification(ctx context.Context, err error) error {
	conf, cErr := config.Fetch()
	if cErr != nil {
		return cErr
	}
	url := conf.Notification.Slack.WebhookUrl
	if url == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, slackTimeout)
	defer cancel()
	_, pErr := request.PostJSON(ctx, url, slackPayload(conf.ProjectName, err, time.Now()), nil)
	return pErr
}

// NotifyError logs systemError and forwards it to Slack in the background.
// Parameters:
// - systemError: The error to log and report. Delivery failures are only logged.
func NotifyError(systemError error) {
	logrus.Error(systemError)
	go func(systemError error) {
		if err := SlackNotification(context.Background(), systemError); err != nil {
			logrus.WithError(err).Warn("failed to send slack notification")
		}
	}(systemError)
}
