package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shiftdesk/config"
	"shiftdesk/internal/api/handler"
	"shiftdesk/internal/api/middleware"
	"shiftdesk/pkg/jwt"
	"shiftdesk/pkg/redis"
)

// 可访问工时报表的角色
var reportRoles = []string{"admin", "supervisor"}

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时不做 Token 黑名单检查与导出限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	handler.RegisterValidators()

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitKB << 10))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			// 工时报表模块
			reports := authorized.Group("/reports")
			reports.Use(middleware.RoleAuth(reportRoles...))
			{
				exportLimit := middleware.RateLimit(rdb, cfg.Report.ExportRateLimit, cfg.Report.ExportRateWindow)

				reports.GET("/departments", h.Report.ListDepartments)
				reports.GET("/department", h.Report.GetDepartmentReport)
				reports.GET("/department/latest", h.Report.GetLatestDepartmentReport)
				reports.GET("/department/export", exportLimit, h.Report.ExportDepartmentReport)
				reports.GET("/employee", h.Report.GetEmployeeReport)
				reports.GET("/employee/export", exportLimit, h.Report.ExportEmployeeReport)
			}
		}
	}

	return r
}
