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
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/jerry-enebeli/soillab/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhook = "https://hooks.slack.test/services/T000/B000/XXXX"

func TestSlackNotification_Posts(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	config.MockConfig(&config.Configuration{
		ProjectName:  "Soil Lab",
		Notification: config.Notification{Slack: config.SlackWebhook{WebhookUrl: webhook}},
	})

	var received slackMessage
	httpmock.RegisterResponder(http.MethodPost, webhook, func(req *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(req.Body).Decode(&received); err != nil {
			return nil, err
		}
		return httpmock.NewStringResponse(http.StatusOK, "ok"), nil
	})

	err := SlackNotification(context.Background(), errors.New("replace test result: connection reset"))
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())

	require.Len(t, received.Blocks, 3)
	assert.Equal(t, "Error From Soil Lab 🐞", received.Blocks[0].Text.Text)
	assert.True(t, strings.Contains(received.Blocks[1].Fields[0].Text, "connection reset"))
}

func TestSlackNotification_NoWebhook(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	config.MockConfig(&config.Configuration{})

	err := SlackNotification(context.Background(), errors.New("boom"))
	assert.NoError(t, err)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestSlackNotification_WebhookRejects(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	config.MockConfig(&config.Configuration{
		Notification: config.Notification{Slack: config.SlackWebhook{WebhookUrl: webhook}},
	})
	httpmock.RegisterResponder(http.MethodPost, webhook, httpmock.NewStringResponder(http.StatusNotFound, "no_service"))

	err := SlackNotification(context.Background(), errors.New("boom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_service")
}
