package httpapi

import (
	"net/http"

	"github.com/mystixxx/altersport/internal/domain/recommendation"
)

// quizRequest mirrors the quiz form payload; enum values are owned by the
// recommendation backend and pass through unvalidated beyond presence.
type quizRequest struct {
	UserName       string   `json:"user_name"`
	Age            string   `json:"age" validate:"required"`
	GroupStyle     string   `json:"group_style" validate:"required"`
	Activities     []string `json:"activities" validate:"required,min=1"`
	City           string   `json:"city"`
	District       string   `json:"district"`
	SportInterests []string `json:"sport_interests"`
}

type quizResponse struct {
	RecommendedSport string   `json:"recommended_sport"`
	RecommendedTeams []string `json:"recommended_teams"`
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitQuiz")
	defer span.End()

	var req quizRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.onboarding.SubmitQuiz(ctx, recommendation.QuizAnswers{
		UserName:       req.UserName,
		Age:            req.Age,
		GroupStyle:     req.GroupStyle,
		Activities:     req.Activities,
		City:           req.City,
		District:       req.District,
		SportInterests: req.SportInterests,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, quizResponse{
		RecommendedSport: result.RecommendedSport,
		RecommendedTeams: orEmpty(result.RecommendedTeams),
	})
}
