package web

import (
	"net/http"

	"article-hub/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	regUC     usecase.RegistrationUseCase
	authUC    usecase.AuthUseCase
	articleUC usecase.ArticleUseCase
	reactUC   usecase.ReactionUseCase
	profileUC usecase.ProfileUseCase
	auth      *AuthManager
	log       *zerolog.Logger
}

func NewServer(
	regUC usecase.RegistrationUseCase,
	authUC usecase.AuthUseCase,
	articleUC usecase.ArticleUseCase,
	reactUC usecase.ReactionUseCase,
	profileUC usecase.ProfileUseCase,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		regUC:     regUC,
		authUC:    authUC,
		articleUC: articleUC,
		reactUC:   reactUC,
		profileUC: profileUC,
		auth:      auth,
		log:       logger,
	}
}

// Router assembles the full route tree. Signup and login are open; every
// content and profile route sits behind requireAuth.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/verifyOtp", s.handleVerifyOtp)
		r.Post("/resendOtp", s.handleResendOtp)
		r.Post("/preferences", s.handleCompleteSignup)
		r.Post("/wizard/back", s.handleWizardBack)
		r.Post("/login", s.handleLogin)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/homeFeed", s.handleHomeFeed)
			r.Get("/myArticles", s.handleMyArticles)
			r.Get("/articles/{id}", s.handleGetArticle)
			r.Post("/createArticle", s.handleCreateArticle)
			r.Patch("/updateArticle/{id}", s.handleUpdateArticle)
			r.Delete("/articles/{id}", s.handleDeleteArticle)
			r.Post("/articleAction/{id}", s.handleArticleAction)
			r.Get("/profile", s.handleGetProfile)
			r.Patch("/profile", s.handleUpdateProfile)
			r.Patch("/profile/resetPassword", s.handleResetPassword)
			r.Post("/profile/preferences", s.handleUpdatePreferences)
		})
	})

	return r
}
