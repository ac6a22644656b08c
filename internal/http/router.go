package http

import (
	"botpanel-backend/internal/handlers"
	"botpanel-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter mounts the panel API. Everything under /api except /api/auth
// and /api/health requires a valid session; tenant-scoped resources
// also require membership in the matching module.
func NewRouter(
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
	moduloHandler *handlers.ModuloHandler,
	bankHandler *handlers.BankHandler,
	clubHandler *handlers.ClubHandler,
	rateHandler *handlers.RateHandler,
	needHandler *handlers.NeedHandler,
	questionHandler *handlers.QuestionHandler,
	conversationHandler *handlers.ConversationHandler,
	chatUserHandler *handlers.ChatUserHandler,
	formHandler *handlers.FormHandler,
	uploadHandler *handlers.UploadHandler,
	mediaHandler *handlers.MediaHandler,
	totpHandler *handlers.TOTPHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/login/totp", authHandler.LoginTOTP).Methods("POST")
	r.HandleFunc("/api/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/api/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Stored uploads, served publicly by generated filename
	r.HandleFunc("/uploads/{filename}", mediaHandler.ServeUpload).Methods("GET")

	// Session routes
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	authAPI.HandleFunc("/totp/setup", totpHandler.Setup).Methods("POST")
	authAPI.HandleFunc("/totp/enable", totpHandler.Enable).Methods("POST")
	authAPI.HandleFunc("/totp/disable", totpHandler.Disable).Methods("POST")

	// Account management, admin only
	cuentasAPI := r.PathPrefix("/api/cuentas").Subrouter()
	cuentasAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	cuentasAPI.HandleFunc("", accountHandler.ListAccounts).Methods("GET")
	cuentasAPI.HandleFunc("", accountHandler.CreateAccount).Methods("POST")
	cuentasAPI.HandleFunc("/{id}", accountHandler.GetAccount).Methods("GET")
	cuentasAPI.HandleFunc("/{id}", accountHandler.UpdateAccount).Methods("PUT")
	cuentasAPI.HandleFunc("/{id}", accountHandler.DeleteAccount).Methods("DELETE")

	// Module catalog, any authenticated account
	modulosAPI := r.PathPrefix("/api/modulos").Subrouter()
	modulosAPI.Use(authMiddleware.Authenticate)
	modulosAPI.HandleFunc("", moduloHandler.ListModulos).Methods("GET")

	// Tenant-scoped resources, gated per module
	bancosAPI := r.PathPrefix("/api/bancos").Subrouter()
	bancosAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("bancos"))
	bancosAPI.HandleFunc("", bankHandler.ListBanks).Methods("GET")
	bancosAPI.HandleFunc("", bankHandler.CreateBank).Methods("POST")
	bancosAPI.HandleFunc("/{id}", bankHandler.UpdateBank).Methods("PUT")
	bancosAPI.HandleFunc("/{id}", bankHandler.DeleteBank).Methods("DELETE")

	clubesAPI := r.PathPrefix("/api/clubes").Subrouter()
	clubesAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("clubes"))
	clubesAPI.HandleFunc("", clubHandler.ListClubs).Methods("GET")
	clubesAPI.HandleFunc("", clubHandler.CreateClub).Methods("POST")
	clubesAPI.HandleFunc("/{id}", clubHandler.UpdateClub).Methods("PUT")
	clubesAPI.HandleFunc("/{id}", clubHandler.DeleteClub).Methods("DELETE")

	tarifasAPI := r.PathPrefix("/api/tarifas").Subrouter()
	tarifasAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("tarifas"))
	tarifasAPI.HandleFunc("", rateHandler.ListRates).Methods("GET")
	tarifasAPI.HandleFunc("", rateHandler.CreateRate).Methods("POST")
	tarifasAPI.HandleFunc("/reporte", rateHandler.RatesReport).Methods("GET")
	tarifasAPI.HandleFunc("/{id}", rateHandler.UpdateRate).Methods("PUT")
	tarifasAPI.HandleFunc("/{id}", rateHandler.DeleteRate).Methods("DELETE")

	necesidadesAPI := r.PathPrefix("/api/necesidades").Subrouter()
	necesidadesAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("necesidades"))
	necesidadesAPI.HandleFunc("", needHandler.ListNeeds).Methods("GET")
	necesidadesAPI.HandleFunc("", needHandler.CreateNeed).Methods("POST")
	necesidadesAPI.HandleFunc("/{id}", needHandler.GetNeed).Methods("GET")
	necesidadesAPI.HandleFunc("/{id}", needHandler.UpdateNeed).Methods("PUT")
	necesidadesAPI.HandleFunc("/{id}", needHandler.DeleteNeed).Methods("DELETE")

	preguntasAPI := r.PathPrefix("/api/preguntas").Subrouter()
	preguntasAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("preguntas"))
	preguntasAPI.HandleFunc("", questionHandler.ListQuestions).Methods("GET")
	preguntasAPI.HandleFunc("", questionHandler.CreateQuestion).Methods("POST")
	preguntasAPI.HandleFunc("/{id}", questionHandler.GetQuestion).Methods("GET")
	preguntasAPI.HandleFunc("/{id}", questionHandler.UpdateQuestion).Methods("PUT")
	preguntasAPI.HandleFunc("/{id}", questionHandler.DeleteQuestion).Methods("DELETE")

	conversacionesAPI := r.PathPrefix("/api/conversaciones").Subrouter()
	conversacionesAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("conversaciones"))
	conversacionesAPI.HandleFunc("", conversationHandler.ListConversations).Methods("GET")

	conversacionAPI := r.PathPrefix("/api/conversacion").Subrouter()
	conversacionAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("conversaciones"))
	conversacionAPI.HandleFunc("/{guid}", conversationHandler.GetConversation).Methods("GET")

	respuestaAPI := r.PathPrefix("/api/enviar-respuesta").Subrouter()
	respuestaAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("conversaciones"))
	respuestaAPI.HandleFunc("", conversationHandler.EnviarRespuesta).Methods("POST")

	imagenAPI := r.PathPrefix("/api/imagen-respuesta").Subrouter()
	imagenAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("conversaciones"))
	imagenAPI.HandleFunc("/{guid}", conversationHandler.Imagen).Methods("GET")

	videoAPI := r.PathPrefix("/api/video-respuesta").Subrouter()
	videoAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("conversaciones"))
	videoAPI.HandleFunc("/{guid}", conversationHandler.Video).Methods("GET")

	usuariosAPI := r.PathPrefix("/api/usuarios").Subrouter()
	usuariosAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("usuarios"))
	usuariosAPI.HandleFunc("", chatUserHandler.ListChatUsers).Methods("GET")
	usuariosAPI.HandleFunc("/{id}", chatUserHandler.UpdateEstado).Methods("PUT")
	usuariosAPI.HandleFunc("/{id}", chatUserHandler.DeleteChatUser).Methods("DELETE")

	formulariosAPI := r.PathPrefix("/api/formularios").Subrouter()
	formulariosAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireModule("formularios"))
	formulariosAPI.HandleFunc("", formHandler.ListForms).Methods("GET")
	formulariosAPI.HandleFunc("/{id}", formHandler.GetForm).Methods("GET")
	formulariosAPI.HandleFunc("/{id}", formHandler.DeleteForm).Methods("DELETE")

	uploadAPI := r.PathPrefix("/api/upload").Subrouter()
	uploadAPI.Use(authMiddleware.Authenticate)
	uploadAPI.HandleFunc("", uploadHandler.Upload).Methods("POST")

	return r
}
