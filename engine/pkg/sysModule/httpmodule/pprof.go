// Package httpmodule
// @Title  性能分析路由
// @Description  开启后在调试服务上挂载/debug/pprof
// @Author  yr  2024/8/21 下午5:00
// @Update  yr  2025/8/2
package httpmodule

import (
	"net/http"
	"net/http/pprof"

	"github.com/gin-gonic/gin"
)

func (hs *HttpModule) registerPprof() {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	h := gin.WrapH(mux)
	hs.handler.GET("/debug/pprof", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/debug/pprof/")
	})
	hs.handler.GET("/debug/pprof/*pprof", h)
	hs.handler.POST("/debug/pprof/symbol", h)
}
