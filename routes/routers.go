package routes

import (
	"net/http"

	"homestay/constants"
	"homestay/controllers"
	middlewares "homestay/middleware"
	"homestay/services"

	"github.com/gin-gonic/gin"
)

// RouterOptions các thành phần cần thiết để dựng router
type RouterOptions struct {
	Services *services.Services
	// LoginLimiter giới hạn số lần đăng nhập theo IP, nil thì không giới hạn
	LoginLimiter *middlewares.RateLimiter
	// UploadDir thư mục file khi dùng local storage, rỗng thì không phục vụ /uploads
	UploadDir string
}

func SetupRoutes(router *gin.Engine, opts RouterOptions) {
	s := opts.Services

	authController := controllers.NewAuthController(s.Auth)
	userController := controllers.NewUserController(s.Users)
	locationController := controllers.NewLocationController(s.Locations)
	unitController := controllers.NewUnitController(s.Units)
	guestController := controllers.NewGuestController(s.Guests)
	reservationController := controllers.NewReservationController(s.Reservations)
	depositController := controllers.NewDepositController(s.Deposits)
	cleaningController := controllers.NewCleaningController(s.Cleaning)
	dashboardController := controllers.NewDashboardController(s.Dashboard)
	uploadController := controllers.NewUploadController(s.Uploads)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	v1 := router.Group("/api/v1")

	login := []gin.HandlerFunc{authController.Login}
	if opts.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{opts.LoginLimiter.Middleware()}, login...)
	}
	v1.POST("/auth/login", login...)

	auth := v1.Group("")
	auth.Use(middlewares.AuthMiddleware(s.Auth))
	can := middlewares.RequireCapability

	auth.GET("/auth/me", authController.Me)
	auth.POST("/auth/logout", authController.Logout)

	auth.GET("/users", can(constants.CapUsersManage), userController.GetUsers)
	auth.POST("/users", can(constants.CapUsersManage), userController.CreateUser)
	auth.GET("/users/:id", can(constants.CapUsersManage), userController.GetUserByID)
	auth.PUT("/users/:id", can(constants.CapUsersManage), userController.UpdateUser)
	auth.DELETE("/users/:id", can(constants.CapUsersManage), userController.DeactivateUser)

	auth.GET("/locations", can(constants.CapLocationsRead), locationController.GetLocations)
	auth.GET("/locations/suggest", can(constants.CapLocationsRead), locationController.SuggestLocation)
	auth.POST("/locations", can(constants.CapLocationsWrite), locationController.CreateLocation)
	auth.GET("/locations/:id", can(constants.CapLocationsRead), locationController.GetLocationByID)
	auth.PUT("/locations/:id", can(constants.CapLocationsWrite), locationController.UpdateLocation)
	auth.DELETE("/locations/:id", can(constants.CapLocationsWrite), locationController.DeleteLocation)

	auth.GET("/units", can(constants.CapUnitsRead), unitController.GetUnits)
	auth.POST("/units", can(constants.CapUnitsWrite), unitController.CreateUnit)
	auth.GET("/units/:id", can(constants.CapUnitsRead), unitController.GetUnitByID)
	auth.PUT("/units/:id", can(constants.CapUnitsWrite), unitController.UpdateUnit)
	auth.DELETE("/units/:id", can(constants.CapUnitsWrite), unitController.DeactivateUnit)
	auth.GET("/units/:id/availability", can(constants.CapUnitsRead), unitController.GetAvailability)

	auth.GET("/guests", can(constants.CapGuestsRead), guestController.GetGuests)
	auth.POST("/guests", can(constants.CapGuestsWrite), guestController.CreateGuest)
	auth.GET("/guests/:id", can(constants.CapGuestsRead), guestController.GetGuestByID)
	auth.PUT("/guests/:id", can(constants.CapGuestsWrite), guestController.UpdateGuest)
	auth.DELETE("/guests/:id", can(constants.CapGuestsWrite), guestController.DeleteGuest)

	auth.GET("/reservations", can(constants.CapReservationsRead), reservationController.GetReservations)
	auth.POST("/reservations", can(constants.CapReservationsWrite), reservationController.CreateReservation)
	auth.GET("/reservations/:id", can(constants.CapReservationsRead), reservationController.GetReservationByID)
	auth.PUT("/reservations/:id", can(constants.CapReservationsWrite), reservationController.UpdateReservation)
	auth.DELETE("/reservations/:id", can(constants.CapReservationsWrite), reservationController.DeleteReservation)
	auth.POST("/reservations/:id/confirm", can(constants.CapReservationsWrite), reservationController.Confirm)
	auth.POST("/reservations/:id/check-in", can(constants.CapReservationsWrite), reservationController.CheckIn)
	auth.POST("/reservations/:id/check-out", can(constants.CapReservationsWrite), reservationController.CheckOut)
	auth.POST("/reservations/:id/extend", can(constants.CapReservationsWrite), reservationController.Extend)
	auth.POST("/reservations/:id/cancel", can(constants.CapReservationsWrite), reservationController.Cancel)

	auth.GET("/deposits", can(constants.CapDepositsRead), depositController.GetDeposits)
	auth.GET("/deposits/reservations/:id/events", can(constants.CapDepositsRead), depositController.GetEvents)
	auth.POST("/deposits/reservations/:id/request", can(constants.CapDepositsWrite), depositController.Request)
	auth.POST("/deposits/reservations/:id/collect", can(constants.CapDepositsWrite), depositController.Collect)
	auth.POST("/deposits/reservations/:id/refund", can(constants.CapDepositsWrite), depositController.Refund)
	auth.POST("/deposits/reservations/:id/forfeit", can(constants.CapDepositsWrite), depositController.Forfeit)
	auth.POST("/deposits/reservations/:id/fail", can(constants.CapDepositsWrite), depositController.Fail)

	auth.GET("/cleaning-tasks", can(constants.CapCleaningRead), cleaningController.GetTasks)
	auth.GET("/cleaning-tasks/:id", can(constants.CapCleaningRead), cleaningController.GetTaskByID)
	auth.POST("/cleaning-tasks/:id/assign", can(constants.CapCleaningAssign), cleaningController.Assign)
	auth.POST("/cleaning-tasks/:id/start", can(constants.CapCleaningWork), cleaningController.Start)
	auth.POST("/cleaning-tasks/:id/complete", can(constants.CapCleaningWork), cleaningController.Complete)
	auth.POST("/cleaning-tasks/:id/photos", can(constants.CapCleaningWork), cleaningController.AddPhoto)
	auth.POST("/cleaning-tasks/:id/fail", can(constants.CapCleaningOverride), cleaningController.Fail)

	auth.GET("/dashboard/summary", can(constants.CapDashboardRead), dashboardController.GetSummary)
	auth.GET("/dashboard/series", can(constants.CapDashboardRead), dashboardController.GetSeries)

	auth.POST("/uploads", can(constants.CapUploadsWrite), uploadController.Upload)
}
