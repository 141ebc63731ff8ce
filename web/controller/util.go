package controller

import (
	"io"
	"net"
	"net/http"
	"strings"

	"pinboard/database"
	"pinboard/logger"
	"pinboard/web/entity"
	"pinboard/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonMsg sends a JSON response with a message and error status.
func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, msg, nil, err)
}

// jsonObj sends a JSON response with an object and error status.
func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, "", obj, err)
}

// jsonMsgObj sends a JSON response with a message, object, and error status.
func jsonMsgObj(c *gin.Context, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		if msg != "" {
			m.Msg = msg
		}
	} else {
		m.Success = false
		m.Msg = msg + " (" + err.Error() + ")"
		logger.Warning(msg+" failed: ", err)
	}
	c.JSON(http.StatusOK, m)
}

// pureJsonMsg sends a pure JSON message response with custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// denied reports a guard rejection to the client with the localized reason.
// The mutation did not happen; the request itself still succeeded.
func denied(c *gin.Context, d service.Decision) {
	pureJsonMsg(c, http.StatusForbidden, false, I18nWeb(c, d.Reason))
}

// jsonFailure maps an operation error to a response: not-found gets a 404,
// anything else is a storage failure surfaced generically.
func jsonFailure(c *gin.Context, err error) {
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "common.notFound"))
		return
	}
	logger.Warning("request failed:", err)
	pureJsonMsg(c, http.StatusInternalServerError, false, I18nWeb(c, "common.storageFailure"))
}

// readUploadedFile reads an optional multipart file field. Returns zero
// values when the field is absent.
func readUploadedFile(c *gin.Context, field string) (string, []byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return fileHeader.Filename, data, nil
}
