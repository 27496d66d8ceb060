package main

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/yuanzicheng/dev-tools/internal/config"
	"github.com/yuanzicheng/dev-tools/internal/i18n"
	"github.com/yuanzicheng/dev-tools/internal/landing"
	"github.com/yuanzicheng/dev-tools/internal/session"
	"github.com/yuanzicheng/dev-tools/internal/ssl"
	"github.com/yuanzicheng/dev-tools/internal/templates"
	"github.com/yuanzicheng/dev-tools/internal/tools"
	"golang.org/x/text/language"
)

func main() {
	config.LoadConfig()

	// Setup view-state store
	db, err := session.InitializeBadgerDB(session.BadgerOptions{
		Dir:      config.Current.Session.Dir,
		InMemory: config.Current.Session.Dir == "",
		TTL:      config.Current.Session.TTL,
	})
	if err != nil {
		log.Fatalf("Error initializing view store: %v\n", err)
	}

	fallback, err := language.Parse(config.Current.Locale.Default)
	if err != nil {
		log.Printf("Unknown default locale %q, using English\n", config.Current.Locale.Default)
		fallback = language.English
	}

	err = templates.SetupTemplates(templates.Static)
	if err != nil {
		log.Fatalf("Error loading templates: %v\n", err)
	}

	// Setup routing
	cat := i18n.New(fallback)
	r := mux.NewRouter()
	tools.SetupRoutes(r, db, cat)
	landing.SetupRoutes(r, cat)

	addr := config.Current.Server.Addr()
	srv := http.Server{
		Addr:    addr,
		Handler: r,

		ReadHeaderTimeout: config.Current.Server.ReadHeaderTimeout,
		WriteTimeout:      config.Current.Server.WriteTimeout,
	}

	if config.Current.Server.TLS() {
		cert, err := ssl.LoadCertificate(
			config.Current.Server.CertFile,
			config.Current.Server.KeyFile,
			config.Current.Server.Host,
		)
		if err != nil {
			log.Fatalf("Error loading certificate: %v\n", err)
		}
		srv.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}

	go func() {
		log.Printf("Listening on %s\n", config.Current.Server.URL())
		var err error
		if srv.TLSConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	<-c

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), config.Current.Server.ShutdownTimeout)
	defer cancel()

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Printf("Error shutting down server: %v\n", err)
	}

	log.Println("Closing view store...")
	err = db.Close()
	if err != nil {
		log.Printf("Error closing view store: %v\n", err)
	}
}
