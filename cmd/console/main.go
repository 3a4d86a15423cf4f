package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/altovivo/client-go/internal/application/auth"
	"github.com/altovivo/client-go/internal/application/business"
	"github.com/altovivo/client-go/internal/application/dto"
	"github.com/altovivo/client-go/internal/application/sales"
	"github.com/altovivo/client-go/internal/authz"
	"github.com/altovivo/client-go/internal/infrastructure/rest"
	"github.com/altovivo/client-go/internal/query"
	"github.com/altovivo/client-go/internal/session"
	"github.com/altovivo/client-go/pkg/config"
	"github.com/altovivo/client-go/pkg/logger"
)

// Consola de demostración: inicia sesión, lista los negocios del usuario y
// muestra las capacidades derivadas sobre cada uno. Credenciales por entorno:
// ALTOVIVO_EMAIL y ALTOVIVO_PASSWORD.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuración inválida:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	store := session.NewStore(cfg.Session.File, log)
	store.Load()

	api := rest.New(cfg.API, store, log)
	cache := query.NewCache(query.Config{
		MaxEntries: cfg.Cache.MaxEntries,
		TTL:        cfg.Cache.TTL(),
		MaxRetries: cfg.API.MaxRetries,
		Backoff:    cfg.API.RetryBackoff(),
	}, log)

	authSvc := auth.NewService(api, cache, store, log)
	bizSvc := business.NewService(api, cache, store, log)
	salesSvc := sales.NewService(api, cache, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if !store.IsAuthenticated() {
		email, password := os.Getenv("ALTOVIVO_EMAIL"), os.Getenv("ALTOVIVO_PASSWORD")
		if email == "" || password == "" {
			fmt.Fprintln(os.Stderr, "sin sesión: exporte ALTOVIVO_EMAIL y ALTOVIVO_PASSWORD")
			os.Exit(1)
		}
		if _, err := authSvc.Login(ctx, dto.LoginForm{Email: email, Password: password}); err != nil {
			log.Fatal().Err(err).Msg("login falló")
		}
	}

	user, err := authSvc.Me(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo cargar el perfil")
	}
	fmt.Printf("sesión: %s <%s>\n", user.FullName, user.Email)

	if out := authz.SessionGuard(store, "/dashboard"); !out.Allowed() {
		fmt.Println("guard de sesión:", out.RedirectTo)
		return
	}

	businesses, err := bizSvc.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudieron listar los negocios")
	}
	for _, b := range businesses {
		caps, err := bizSvc.Capabilities(ctx, b.ID)
		if err != nil {
			log.Warn().Err(err).Int64("business_id", b.ID).Msg("capacidades no disponibles")
			continue
		}
		fmt.Printf("  negocio %q: dueño=%v usuarios=%v roles=%v permisos=%d\n",
			b.Name, caps.IsOwner, caps.CanManageUsers, caps.CanManageRoles, len(caps.Permissions))

		summary, err := salesSvc.DailySummary(ctx, b.ID, "")
		if err == nil && summary != nil {
			fmt.Printf("    ventas de hoy: %d por %s\n", summary.TotalSales, summary.TotalAmount)
		}
	}

	hits, misses := cache.Stats()
	log.Info().Uint64("hits", hits).Uint64("misses", misses).Msg("caché")
}
