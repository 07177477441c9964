package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/placemate/placemate/models"
	"github.com/placemate/placemate/util"
)

const (
	chatCompletionsURL = "https://router.huggingface.co/v1/chat/completions"
	chatbotModel       = "openai/gpt-oss-20b:nebius"
)

type chatCompletionRequest struct {
	Model    string               `json:"model"`
	Messages []chatCompletionTurn `json:"messages"`
}

type chatCompletionTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionTurn `json:"message"`
	} `json:"choices"`
}

type ChatbotResponse struct {
	Reply string `json:"reply"`
}

// ChatbotHandler proxies a single user message to the HuggingFace
// chat-completions router and returns the model's reply text.
//
// @Summary		Ask the chatbot
// @Description	Forward one message to the hosted model and return its reply
// @Tags			chatbot
// @Param			chatbotReq	body	models.ChatbotRequest	true	"Message to send"
// @Produce		json
// @Success		200	{object}	ChatbotResponse
// @Failure		500	{object}	util.ApiError
// @Router			/chatbot [post]
func ChatbotHandler(apiKey string) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
			return
		}

		var in models.ChatbotRequest
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			util.WriteError(res, http.StatusBadRequest, fmt.Sprintf("decode error: %v", err))
			return
		}
		if err := validate.Struct(in); err != nil {
			util.WriteError(res, http.StatusBadRequest, err.Error())
			return
		}

		client := resty.New().SetTimeout(30 * time.Second)
		var payload chatCompletionResponse
		resp, err := client.R().
			SetAuthToken(apiKey).
			SetBody(chatCompletionRequest{
				Model:    chatbotModel,
				Messages: []chatCompletionTurn{{Role: "user", Content: in.Message}},
			}).
			SetResult(&payload).
			Post(chatCompletionsURL)
		if err != nil || resp.IsError() {
			slog.Error("chatbot request failed", "err", err, "status", resp.StatusCode())
			util.WriteError(res, http.StatusInternalServerError, "chatbot failed")
			return
		}

		reply := ""
		if len(payload.Choices) > 0 {
			reply = payload.Choices[0].Message.Content
		}
		util.WriteData(res, http.StatusOK, ChatbotResponse{Reply: reply})
	}
}
