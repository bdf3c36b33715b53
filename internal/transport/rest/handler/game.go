package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"triviarena/internal/model"
	"triviarena/internal/service"
	"triviarena/internal/transport/rest/middleware"
)

// GameHandler exposes the play session lifecycle over REST.
type GameHandler struct {
	sessions *service.SessionService
}

func NewGameHandler(sessions *service.SessionService) *GameHandler {
	return &GameHandler{sessions: sessions}
}

// questionView is the play-facing shape of a question: no correct index and
// no explanation until the answer comes back.
type questionView struct {
	ID         string           `json:"id"`
	Text       string           `json:"text"`
	Options    []string         `json:"options"`
	Difficulty model.Difficulty `json:"difficulty"`
	Topic      string           `json:"topic"`
}

func toQuestionView(q *model.Question) *questionView {
	if q == nil {
		return nil
	}
	return &questionView{
		ID:         q.ID,
		Text:       q.Text,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		Topic:      q.Topic,
	}
}

type startGameRequest struct {
	Collection      string   `json:"collection"`
	Mode            string   `json:"mode"`
	Adaptive        bool     `json:"adaptive"`
	SeenQuestionIDs []string `json:"seenQuestionIds"`
}

type sessionResponse struct {
	ID              string          `json:"id"`
	Mode            string          `json:"mode"`
	Adaptive        bool            `json:"adaptive"`
	Questions       []*questionView `json:"questions"`
	Position        int             `json:"position"`
	TargetLength    int             `json:"targetLength"`
	CorrectCount    int             `json:"correctCount"`
	TotalScore      int             `json:"totalScore"`
	TimerMultiplier float64         `json:"timerMultiplier"`
	Complete        bool            `json:"complete"`
}

func toSessionResponse(s *model.GameSession) *sessionResponse {
	views := make([]*questionView, len(s.Questions))
	for i := range s.Questions {
		views[i] = toQuestionView(&s.Questions[i])
	}
	return &sessionResponse{
		ID:              s.ID,
		Mode:            s.Mode,
		Adaptive:        s.Adaptive,
		Questions:       views,
		Position:        s.Position,
		TargetLength:    s.TargetLength,
		CorrectCount:    s.CorrectCount,
		TotalScore:      s.TotalScore,
		TimerMultiplier: s.TimerMultiplier,
		Complete:        s.Complete(),
	}
}

// Start handles POST /v1/games.
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	svcReq := service.StartGameRequest{
		Collection:      req.Collection,
		Mode:            req.Mode,
		Adaptive:        req.Adaptive,
		SeenQuestionIDs: req.SeenQuestionIDs,
	}
	if claims := middleware.GetClaims(r.Context()); claims != nil && !claims.Guest {
		svcReq.UserID = claims.UserID
		svcReq.TimerMultiplier = claims.TimerMultiplier
	}

	session, err := h.sessions.Start(r.Context(), svcReq)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoQuestions):
			respondError(w, http.StatusServiceUnavailable, "no questions available")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusCreated, toSessionResponse(session))
}

// Get handles GET /v1/games/{id}.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			respondError(w, http.StatusNotFound, "session not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(session))
}

// Delete handles DELETE /v1/games/{id}.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type answerRequest struct {
	OptionIndex    int   `json:"optionIndex"`
	TimeRemaining  int   `json:"timeRemaining"`
	ResponseTimeMs int64 `json:"responseTimeMs"`
}

type answerResponse struct {
	Correct      bool                 `json:"correct"`
	CorrectIndex int                  `json:"correctIndex"`
	Explanation  string               `json:"explanation"`
	DeepDive     string               `json:"deepDive,omitempty"`
	Flagged      bool                 `json:"flagged"`
	Points       model.ScoreBreakdown `json:"points"`
	SessionScore int                  `json:"sessionScore"`
	Position     int                  `json:"position"`
	Complete     bool                 `json:"complete"`
	NextQuestion *questionView        `json:"nextQuestion,omitempty"`
}

// Answer handles POST /v1/games/{id}/answers.
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.sessions.SubmitAnswer(r.Context(), mux.Vars(r)["id"], service.AnswerRequest{
		OptionIndex:    req.OptionIndex,
		TimeRemaining:  req.TimeRemaining,
		ResponseTimeMs: req.ResponseTimeMs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			respondError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, service.ErrSessionComplete):
			respondError(w, http.StatusConflict, "session already complete")
		default:
			respondError(w, http.StatusInternalServerError, "failed to submit answer")
		}
		return
	}

	respondJSON(w, http.StatusOK, &answerResponse{
		Correct:      result.Correct,
		CorrectIndex: result.CorrectIndex,
		Explanation:  result.Explanation,
		DeepDive:     result.DeepDive,
		Flagged:      result.Flagged,
		Points:       result.Points,
		SessionScore: result.SessionScore,
		Position:     result.Position,
		Complete:     result.Complete,
		NextQuestion: toQuestionView(result.NextQuestion),
	})
}
