package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Liv-glitch/Farm-Mall-sub000/internal/docs"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/mw"
	authv1 "github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/v1/auth"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/v1/health"
	plantsv1 "github.com/Liv-glitch/Farm-Mall-sub000/internal/transport/web/v1/plants"
)

func newRouter(
	hh *health.Handler,
	reg *authv1.HandlerRegister,
	login *authv1.HandlerLogin,
	logout *authv1.HandlerLogout,
	ph *plantsv1.Handler,
	authMW mw.AuthDeps,
	rl func(http.Handler) http.Handler,
	logger *log.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /api/healthz", hh.Liveness)
	mux.HandleFunc("GET /api/readyz", hh.Readiness)

	// auth
	mux.HandleFunc("POST /api/register", reg.Register)
	mux.HandleFunc("POST /api/auth", login.Login)
	mux.HandleFunc("DELETE /api/auth/{token}", logout.Logout)

	// plants: распознавание под авторизацией и лимитом,
	// лимит считается после auth — идентификатор окна это пользователь
	mux.Handle("POST /api/plants/identify",
		mw.RequireAuth(authMW, rl(limitBody(10<<20, ph.Identify)))) // 10MB лимит на фото
	mux.Handle("GET /api/plants/history", mw.RequireAuth(authMW, http.HandlerFunc(ph.UserHistory)))
	mux.Handle("GET /api/plants/recent", mw.OptionalAuth(authMW, rl(http.HandlerFunc(ph.Recent))))

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	})
}
