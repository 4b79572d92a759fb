package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellnesshub/internal/app"
	"wellnesshub/internal/transport/http/response"
)

// 25 MB, the upstream transcription endpoint's own upload cap.
const maxAudioUploadBytes = 25 << 20

type VoiceHandler struct {
	chatService *app.ChatService
}

func NewVoiceHandler(chatService *app.ChatService) *VoiceHandler {
	return &VoiceHandler{chatService: chatService}
}

// Transcribe accepts a multipart "audio" file and proxies it to the speech
// endpoint. No transcoding happens here.
func (h *VoiceHandler) Transcribe(c *gin.Context) {
	if _, ok := getUserIDFromContext(c); !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing audio file")
		return
	}
	if fileHeader.Size <= 0 || fileHeader.Size > maxAudioUploadBytes {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "audio file size out of range")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read audio file failed")
		return
	}
	defer file.Close()

	text, err := h.chatService.Transcribe(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrLLMConfig):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailure, "transcription failed")
		}
		return
	}

	response.OK(c, gin.H{"text": text})
}
