// Package auth
// 模块名: basic auth
// 功能描述: 调试接口的basic auth认证
// 作者:  yr  2024/1/16 0016 10:30
// 最后更新:  yr  2025/8/2
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const realm = "Restricted Content"

// BasicAuth 账号表为空时拒绝所有请求
func BasicAuth(accountMap map[string]string) gin.HandlerFunc {
	accounts := gin.Accounts{}
	for user, password := range accountMap {
		if user == "" {
			continue
		}
		accounts[user] = password
	}
	if len(accounts) == 0 {
		return func(c *gin.Context) {
			c.Header("WWW-Authenticate", "Basic realm=\""+realm+"\"")
			c.AbortWithStatus(http.StatusUnauthorized)
		}
	}
	// 认证成功后gin.AuthUserKey里是用户名
	return gin.BasicAuthForRealm(accounts, realm)
}
