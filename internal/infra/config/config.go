// internal/infra/config/config.go
package config

import "os"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port string

	// GCP / Firestore
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	GCPCreds                 string

	// Firebase Auth 用のプロジェクトID
	FirebaseProjectID string

	// Cart persistence backend: "firestore" (default) | "redis" | "postgres" | "memory"
	CartBackend string

	// Redis (CART_BACKEND=redis)
	RedisAddr string
	RedisDB   string
	// パスワードは env 直指定 または Secret Manager の secretId 指定
	RedisPassword       string
	RedisPasswordSecret string

	// Postgres (CART_BACKEND=postgres)
	PostgresDSN       string
	PostgresDSNSecret string

	// Browser origin allowed by CORS (empty -> "*")
	CORSOrigin string

	// Collection names (Firestore)
	CartsCollection     string
	WishlistsCollection string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		// FIREBASE_PROJECT_ID が未指定なら GCP のデフォルトを使う
		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		CartBackend: getenvDefault("CART_BACKEND", "firestore"),

		RedisAddr:           getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisDB:             getenvDefault("REDIS_DB", "0"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisPasswordSecret: os.Getenv("REDIS_PASSWORD_SECRET"),

		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		PostgresDSNSecret: os.Getenv("POSTGRES_DSN_SECRET"),

		CORSOrigin: os.Getenv("CORS_ORIGIN"),

		CartsCollection:     getenvDefault("CARTS_COLLECTION", "carts"),
		WishlistsCollection: getenvDefault("WISHLISTS_COLLECTION", "wishlists"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
