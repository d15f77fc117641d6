package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	httpdelivery "cryptofolio-backend/internal/delivery/http"
	"cryptofolio-backend/internal/delivery/websocket"
	"cryptofolio-backend/internal/domain"
	"cryptofolio-backend/internal/infrastructure/coingecko"
	"cryptofolio-backend/internal/infrastructure/db"
	"cryptofolio-backend/internal/infrastructure/fcm"
	"cryptofolio-backend/internal/infrastructure/firebase"
	"cryptofolio-backend/internal/repository"
	"cryptofolio-backend/internal/usecase"
)

// staticVerifier lets a credential-less dev setup act as one fixed user.
type staticVerifier struct {
	userID string
}

func (v staticVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	return v.userID, nil
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	// 1. Firebase (identity, document store, push). Optional.
	fbApp, err := firebase.NewApp(ctx)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}

	// 2. Pick persistence: Postgres > Firestore > in-memory.
	var walletRepo domain.WalletRepository
	var alertRepo domain.AlertRepository
	var favRepo domain.FavoriteRepository

	switch {
	case os.Getenv("DATABASE_URL") != "":
		pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"), db.PoolConfigFromEnv())
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("postgres migrate: %v", err)
		}
		walletRepo = repository.NewPostgresWalletRepository(pool)
		alertRepo = repository.NewPostgresAlertRepository(pool)
		favRepo = repository.NewPostgresFavoriteRepository(pool)
		log.Println("Using Postgres persistence")

	case fbApp != nil:
		fsClient, err := fbApp.Firestore(ctx)
		if err != nil {
			log.Fatalf("firestore init: %v", err)
		}
		walletRepo = repository.NewFirestoreWalletRepository(fsClient)
		alertRepo = repository.NewFirestoreAlertRepository(fsClient)
		favRepo = repository.NewFirestoreFavoriteRepository(fsClient)
		log.Println("Using Firestore persistence")

	default:
		walletRepo = repository.NewInMemoryWalletRepository()
		alertRepo = repository.NewInMemoryAlertRepository()
		favRepo = repository.NewInMemoryFavoriteRepository()
		log.Println("Using in-memory persistence (state is lost on restart)")
	}

	// 3. Identity and push channel.
	var verifier httpdelivery.TokenVerifier
	var fcmClient *fcm.Client
	if fbApp != nil {
		authClient, err := fbApp.Auth(ctx)
		if err != nil {
			log.Fatalf("firebase auth init: %v", err)
		}
		verifier = firebase.NewAuthenticator(authClient)

		msgClient, err := fbApp.Messaging(ctx)
		if err != nil {
			log.Fatalf("firebase messaging init: %v", err)
		}
		fcmClient = fcm.NewClient(msgClient)
	} else if devUser := os.Getenv("DEV_USER_ID"); devUser != "" {
		verifier = staticVerifier{userID: devUser}
		log.Printf("Auth disabled, acting as user %q", devUser)
	}

	// 4. Price API, snapshot and token repositories.
	gecko := coingecko.NewClient(os.Getenv("COINGECKO_BASE_URL"))
	marketRepo := repository.NewInMemoryMarketRepository()
	tokenRepo := repository.NewTokenRepository()
	currency := os.Getenv("DEFAULT_CURRENCY")

	// 5. Usecases and background loops.
	walletUC := usecase.NewWalletUsecase(walletRepo, gecko)
	portfolioUC := usecase.NewPortfolioUsecase(walletUC, gecko)
	marketsUC := usecase.NewMarketsUsecase(marketRepo, gecko, favRepo, currency)
	trendsUC := usecase.NewTrendsUsecase(gecko)
	alertsUC := usecase.NewAlertsUsecase(alertRepo, gecko, fcmClient, tokenRepo, currency)

	go marketsUC.Run(ctx)
	go alertsUC.Run(ctx)

	// 6. Delivery.
	auth := httpdelivery.NewAuthMiddleware(verifier)
	walletHandler := httpdelivery.NewWalletHandler(walletUC)
	portfolioHandler := httpdelivery.NewPortfolioHandler(portfolioUC)
	marketHandler := httpdelivery.NewMarketHandler(marketsUC)
	trendHandler := httpdelivery.NewTrendHandler(trendsUC)
	alertHandler := httpdelivery.NewAlertHandler(alertsUC)
	favoriteHandler := httpdelivery.NewFavoriteHandler(marketsUC)
	tokenHandler := httpdelivery.NewTokenHandler(tokenRepo)
	wsHandler := websocket.NewHandler(marketRepo)

	http.HandleFunc("/api/markets", marketHandler.HandleMarkets)
	http.HandleFunc("/api/markets/chart", marketHandler.HandleChart)
	http.HandleFunc("/api/markets/search", marketHandler.HandleSearch)
	http.HandleFunc("/api/trends", trendHandler.HandleOverview)
	http.HandleFunc("/api/trends/forecast", trendHandler.HandleForecast)
	http.HandleFunc("/api/wallet", auth.RequireUser(walletHandler.HandleWallet))
	http.HandleFunc("/api/wallet/summary", auth.RequireUser(portfolioHandler.HandleSummary))
	http.HandleFunc("/api/wallet/pnl", auth.RequireUser(portfolioHandler.HandlePnL))
	http.HandleFunc("/api/portfolio", auth.RequireUser(portfolioHandler.HandlePortfolio))
	http.HandleFunc("/api/alerts", auth.RequireUser(alertHandler.HandleAlerts))
	http.HandleFunc("/api/favorites", auth.RequireUser(favoriteHandler.HandleFavorites))
	http.HandleFunc("/api/tokens/register", tokenHandler.HandleRegister)
	http.HandleFunc("/api/tokens/unregister", tokenHandler.HandleUnregister)
	http.HandleFunc("/ws", wsHandler.Handle)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server executing on :%s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}
