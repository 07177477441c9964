package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kataras/muxie"
	"github.com/lib/pq"

	"github.com/placemate/placemate/auth"
	"github.com/placemate/placemate/chat"
	"github.com/placemate/placemate/models"
	"github.com/placemate/placemate/util"
)

// ChatPeer is the contact-list entry for the messaging view.
type ChatPeer struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	Skills    pq.StringArray `json:"skills"`
	Companies pq.StringArray `json:"companies"`
	Picture   string         `json:"picture"`
}

// @Summary		List chat peers
// @Description	Every registered user except the caller
// @Tags			message
// @Produce		json
// @Success		200	{array}		ChatPeer
// @Failure		401	{object}	util.ApiError
// @Router			/messages/users [get]
func GetChatUsersHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	user := auth.MustGetUser(req)

	users, err := util.GetChatPeers(util.GetDb(), user.ID)
	if err != nil {
		slog.Error("could not fetch chat peers", "err", err)
		util.WriteError(res, http.StatusInternalServerError, "something went wrong")
		return
	}

	peers := make([]ChatPeer, 0, len(users))
	for _, u := range users {
		picture := u.Picture
		if picture == "" {
			picture = util.FallbackAvatarURL(u.Name)
		}
		peers = append(peers, ChatPeer{
			ID:        u.ID,
			Name:      u.Name,
			Role:      u.Role,
			Skills:    u.Skills,
			Companies: u.Companies,
			Picture:   picture,
		})
	}
	util.WriteData(res, http.StatusOK, peers)
}

// @Summary		Get a conversation
// @Description	The flat message log between the caller and another user, oldest first
// @Tags			message
// @Param			userId	path	string	true	"Other user id"
// @Produce		json
// @Success		200	{array}		models.Message
// @Failure		401	{object}	util.ApiError
// @Router			/messages/{userId} [get]
func GetConversationHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}
	user := auth.MustGetUser(req)
	otherID, ok := parseID(res, muxie.GetParam(res, "userId"))
	if !ok {
		return
	}

	messages, err := util.GetConversation(util.GetDb(), user.ID, otherID)
	if err != nil {
		slog.Error("could not fetch conversation", "err", err)
		util.WriteError(res, http.StatusInternalServerError, "something went wrong")
		return
	}
	util.WriteData(res, http.StatusOK, messages)
}

// PostMessageHandler stores a message sent over plain HTTP and forwards it
// to the receiver's live sessions, same as a message sent over the socket.
//
// @Summary		Send a message
// @Description	Append a message to the log and deliver it live when the receiver is online
// @Tags			message
// @Param			messageReq	body	models.SendMessageRequest	true	"Message to send"
// @Produce		json
// @Success		200	{object}	models.Message
// @Failure		400	{object}	util.ApiError
// @Router			/messages [post]
func PostMessageHandler(hub *chat.Hub) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
			return
		}
		user := auth.MustGetUser(req)
		if !ensureUserRow(res, user) {
			return
		}

		var in models.SendMessageRequest
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			util.WriteError(res, http.StatusBadRequest, fmt.Sprintf("decode error: %v", err))
			return
		}
		if err := validate.Struct(in); err != nil {
			util.WriteError(res, http.StatusBadRequest, err.Error())
			return
		}

		msg, err := util.SaveMessage(util.GetDb(), user.ID, in.Receiver, in.Content)
		if err != nil {
			slog.Error("could not save message", "err", err)
			util.WriteError(res, http.StatusInternalServerError, "something went wrong")
			return
		}
		hub.Forward(msg)

		util.WriteData(res, http.StatusOK, msg)
	}
}
