// internal/platform/di/infra.go
package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	appcfg "agromart/internal/infra/config"
)

// Backend names accepted by CART_BACKEND.
const (
	BackendFirestore = "firestore"
	BackendRedis     = "redis"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"
)

// Infra is shared runtime infrastructure for DI.
// - owns external clients (Firestore/FirebaseAuth/SecretManager/Redis/Postgres)
// - owns env/config-resolved runtime settings (backend choice, collection names)
//
// IMPORTANT:
// Infra must NOT depend on routers, handlers, or queries.
type Infra struct {
	// Config
	Config    *appcfg.Config
	ProjectID string

	// Backend selected by CART_BACKEND (normalized)
	CartBackend string

	// Clients (owned; Close-managed)
	Firestore     *firestore.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
	Redis         *goredis.Client
	Postgres      *sql.DB

	// Runtime settings (resolved once)
	CORSOrigin          string
	CartsCollection     string
	WishlistsCollection string
}

// NewInfra initializes shared infra.
// The client of the selected cart backend is strict (return error).
// Firebase/Auth and SecretManager are best-effort (warn + continue).
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("di.infra: config is nil")
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.CartBackend))
	if backend == "" {
		backend = BackendFirestore
	}
	switch backend {
	case BackendFirestore, BackendRedis, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("di.infra: unknown CART_BACKEND %q", backend)
	}

	inf := &Infra{
		Config:      cfg,
		ProjectID:   resolveProjectID(cfg),
		CartBackend: backend,

		CORSOrigin:          strings.TrimSpace(cfg.CORSOrigin),
		CartsCollection:     strings.TrimSpace(cfg.CartsCollection),
		WishlistsCollection: strings.TrimSpace(cfg.WishlistsCollection),
	}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds) // GOOGLE_APPLICATION_CREDENTIALS
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[di.infra] Using credentials file for GCP clients: %s", redactPath(credFile))
	} else {
		log.Printf("[di.infra] Using Application Default Credentials (no credentials file configured)")
	}

	// 1) Optional: Secret Manager client (resolves REDIS_PASSWORD_SECRET / POSTGRES_DSN_SECRET)
	{
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[di.infra] WARN: secretmanager.NewClient failed: %v (secret-resolved settings are disabled)", err)
			sm = nil
		}
		inf.SecretManager = sm
	}

	// 2) Firestore (strict when it is the cart backend, best-effort otherwise;
	//    the wishlist store still prefers it when reachable)
	{
		var fsClient *firestore.Client
		var err error
		if strings.TrimSpace(inf.ProjectID) == "" {
			err = errors.New("projectID is empty (set FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)")
		} else {
			fsClient, err = firestore.NewClient(ctx, inf.ProjectID, clientOpts...)
		}
		if err != nil {
			if backend == BackendFirestore {
				_ = inf.Close()
				return nil, fmt.Errorf("di.infra: firestore.NewClient failed (project=%s): %w", inf.ProjectID, err)
			}
			log.Printf("[di.infra] WARN: firestore init skipped: %v (wishlists fall back to memory)", err)
		} else {
			inf.Firestore = fsClient
			log.Printf("[di.infra] Firestore connected project=%s", inf.ProjectID)
		}
	}

	// 3) Redis (strict when selected)
	if backend == BackendRedis {
		password := strings.TrimSpace(cfg.RedisPassword)
		if password == "" && strings.TrimSpace(cfg.RedisPasswordSecret) != "" {
			v, err := inf.resolveSecret(ctx, cfg.RedisPasswordSecret)
			if err != nil {
				_ = inf.Close()
				return nil, fmt.Errorf("di.infra: resolve REDIS_PASSWORD_SECRET failed: %w", err)
			}
			password = v
		}

		db, err := strconv.Atoi(strings.TrimSpace(cfg.RedisDB))
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("di.infra: invalid REDIS_DB %q: %w", cfg.RedisDB, err)
		}

		client := goredis.NewClient(&goredis.Options{
			Addr:     strings.TrimSpace(cfg.RedisAddr),
			Password: password,
			DB:       db,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			_ = inf.Close()
			return nil, fmt.Errorf("di.infra: redis ping failed (addr=%s): %w", cfg.RedisAddr, err)
		}
		inf.Redis = client
		log.Printf("[di.infra] Redis connected addr=%s db=%d", cfg.RedisAddr, db)
	}

	// 4) Postgres (strict when selected)
	if backend == BackendPostgres {
		dsn := strings.TrimSpace(cfg.PostgresDSN)
		if dsn == "" && strings.TrimSpace(cfg.PostgresDSNSecret) != "" {
			v, err := inf.resolveSecret(ctx, cfg.PostgresDSNSecret)
			if err != nil {
				_ = inf.Close()
				return nil, fmt.Errorf("di.infra: resolve POSTGRES_DSN_SECRET failed: %w", err)
			}
			dsn = v
		}
		if dsn == "" {
			_ = inf.Close()
			return nil, errors.New("di.infra: POSTGRES_DSN is empty (set POSTGRES_DSN or POSTGRES_DSN_SECRET)")
		}

		db, err := sql.Open("postgres", dsn)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("di.infra: sql.Open failed: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			_ = inf.Close()
			return nil, fmt.Errorf("di.infra: postgres ping failed: %w", err)
		}
		inf.Postgres = db
		log.Printf("[di.infra] Postgres connected")
	}

	// 5) Firebase App/Auth (best-effort)
	if strings.TrimSpace(inf.ProjectID) != "" {
		fbCfg := &firebase.Config{ProjectID: resolveFirebaseProjectID(cfg, inf.ProjectID)}
		fbApp, err := firebase.NewApp(ctx, fbCfg, clientOpts...)
		if err != nil {
			log.Printf("[di.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[di.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[di.infra] Firebase Auth initialized")
			}
		}
	} else {
		log.Printf("[di.infra] WARN: projectID is empty (Firebase Auth disabled; cart identity comes from cartId only)")
	}

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.Postgres != nil {
		_ = i.Postgres.Close()
	}
	return nil
}

// resolveSecret reads the latest version of a Secret Manager secret.
// secretID may be a bare name or a full "projects/.../secrets/.../versions/..." path.
func (i *Infra) resolveSecret(ctx context.Context, secretID string) (string, error) {
	if i == nil || i.SecretManager == nil {
		return "", errors.New("di.infra: secret manager client is not configured")
	}
	sid := strings.TrimSpace(secretID)
	if sid == "" {
		return "", errors.New("di.infra: secretID is empty")
	}

	name := sid
	if !strings.HasPrefix(sid, "projects/") {
		prj := strings.TrimSpace(i.ProjectID)
		if prj == "" {
			return "", errors.New("di.infra: projectID is empty (cannot build secret name)")
		}
		name = "projects/" + prj + "/secrets/" + sid + "/versions/latest"
	}

	resp, err := i.SecretManager.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("di.infra: AccessSecretVersion failed (%s): %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("di.infra: empty payload (%s)", name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

func resolveProjectID(cfg *appcfg.Config) string {
	// Priority:
	// 1) cfg.FirestoreProjectID (resolved by config.Load)
	// 2) FIRESTORE_PROJECT_ID
	// 3) GCP_PROJECT_ID
	// 4) GOOGLE_CLOUD_PROJECT (often set in Cloud Run)
	// 5) FIREBASE_PROJECT_ID (fallback)
	if cfg != nil {
		if v := strings.TrimSpace(cfg.FirestoreProjectID); v != "" {
			return v
		}
	}

	for _, k := range []string{
		"FIRESTORE_PROJECT_ID",
		"GCP_PROJECT_ID",
		"GOOGLE_CLOUD_PROJECT",
		"FIREBASE_PROJECT_ID",
	} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}

	return ""
}

func resolveFirebaseProjectID(cfg *appcfg.Config, fallback string) string {
	if cfg != nil {
		if v := strings.TrimSpace(cfg.FirebaseProjectID); v != "" {
			return v
		}
	}
	return fallback
}

func redactPath(p string) string {
	// Do not log full path (Windows/Unix compatible light masking)
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	if len(parts) == 0 {
		return "***"
	}
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***" + "/" + last
}
