package handlers

import (
	userRepoPkg "voltport/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	SignupHandler     gin.HandlerFunc
	LoginHandler      gin.HandlerFunc
	AdminLoginHandler gin.HandlerFunc
	LogoutHandler     gin.HandlerFunc

	// Profile endpoints
	GetProfileHandler    gin.HandlerFunc
	UpdateProfileHandler gin.HandlerFunc
	DeleteAccountHandler gin.HandlerFunc

	// Port endpoints
	ListPortsHandler    gin.HandlerFunc
	GetPortHandler      gin.HandlerFunc
	GetPortSlotsHandler gin.HandlerFunc
	CreatePortHandler   gin.HandlerFunc
	UpdatePortHandler   gin.HandlerFunc
	DeletePortHandler   gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler  gin.HandlerFunc
	ListMyBookingsHandler gin.HandlerFunc
	PayBookingHandler     gin.HandlerFunc
	CancelBookingHandler  gin.HandlerFunc

	// Favorite endpoints
	AddFavoriteHandler    gin.HandlerFunc
	RemoveFavoriteHandler gin.HandlerFunc
	ListFavoritesHandler  gin.HandlerFunc
	CheckFavoriteHandler  gin.HandlerFunc

	// Subscription endpoints
	ListPlansHandler           gin.HandlerFunc
	SubscribeHandler           gin.HandlerFunc
	ListMySubscriptionsHandler gin.HandlerFunc
	CheckLimitHandler          gin.HandlerFunc

	// Admin endpoints
	CreatePlanHandler          gin.HandlerFunc
	AdminGetAllUsersHandler    gin.HandlerFunc
	AdminUpdateUserHandler     gin.HandlerFunc
	AdminGetAllBookingsHandler gin.HandlerFunc
	AdminGetStatsHandler       gin.HandlerFunc

	// Storage endpoints
	UploadFileHandler     gin.HandlerFunc
	GetDownloadURLHandler gin.HandlerFunc
}
