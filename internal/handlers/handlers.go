package handlers

import (
	"html/template"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ndisproject/hrm-backend/internal/config"
	"github.com/ndisproject/hrm-backend/internal/storage"
)

var log = logrus.New()

// Deps carries everything the request handlers need. It is built once in main
// and passed in; there is no package-level cached state besides the logger.
type Deps struct {
	DB    *gorm.DB
	Store *storage.Store
	Cfg   *config.Config

	tmpl *template.Template
}

func SetupRoutes(r *gin.Engine, deps *Deps) {
	sessionStore := cookie.NewStore([]byte(deps.Cfg.SessionSecret))
	r.Use(sessions.Sessions("hrm_session", sessionStore))

	deps.loadTemplates(r)

	r.GET("/health", HealthCheck)
	r.Static("/uploads", deps.Store.Root)

	r.GET("/", deps.Home)
	r.GET("/candidate-form", deps.CandidateForm)

	auth := r.Group("/auth")
	{
		auth.GET("/login", deps.LoginForm)
		auth.POST("/login", deps.Login)
		auth.GET("/register", deps.RegisterForm)
		auth.POST("/register", deps.Register)
		auth.GET("/logout", deps.Logout)
		auth.POST("/logout", deps.Logout)
	}

	admin := r.Group("/admin")
	{
		admin.GET("", deps.AdminDashboard)
		admin.GET("/candidates", deps.AdminCandidates)
		admin.GET("/users", deps.AdminUsers)
		admin.GET("/staffs", deps.AdminStaffsRedirect)
		admin.GET("/users/new", deps.AdminNewUserForm)
		admin.POST("/users/new", deps.AdminCreateUser)
		admin.GET("/applicants", deps.AdminApplicants)
		admin.GET("/applicants/:id/profile", deps.AdminApplicantProfile)
		admin.POST("/applicants/:id/convert", deps.AdminConvertApplicant)
	}

	portal := r.Group("/portal")
	{
		portal.GET("/profile", deps.PortalProfile)
		portal.POST("/profile", deps.PortalProfileSubmit)
		portal.POST("/profile/upload", deps.PortalProfileUpload)
		portal.GET("/profile/admin/:user_id", deps.PortalAdminProfile)
		portal.POST("/profile/admin/:user_id", deps.PortalAdminProfileSubmit)
		portal.POST("/profile/admin/:user_id/upload", deps.PortalAdminProfileUpload)
	}

	api := r.Group("/api/v1")
	{
		api.GET("/me", deps.APIMe)
		api.GET("/admin/metrics", deps.APIAdminMetrics)
		api.GET("/admin/candidates", deps.APIAdminCandidates)
		api.GET("/admin/workers", deps.APIAdminWorkers)
		api.GET("/admin/applicants", deps.APIAdminApplicants)
		api.PUT("/portal/profile", deps.APIUpdateProfile)
		api.POST("/portal/profile/upload", deps.APIUploadProfileAsset)
		api.POST("/hr/recruitment/candidates/", deps.APICreateCandidate)
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
