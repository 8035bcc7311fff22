package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zenadmin/pkg/logger"
)

type Handlers struct {
	Service *Service
}

type logPage struct {
	List     []Entry `json:"list"`
	Total    int     `json:"total"`
	Current  int     `json:"current"`
	PageSize int     `json:"pageSize"`
}

// List handles GET /api/system/logs (protected). Read-only: entries are
// append-only and never editable through the API.
func (h Handlers) List(c *gin.Context) {
	q := Query{
		Username: c.Query("username"),
		Action:   c.Query("action"),
	}
	q.Current, _ = strconv.Atoi(c.Query("current"))
	q.PageSize, _ = strconv.Atoi(c.Query("pageSize"))

	entries, total, err := h.Service.List(c.Request.Context(), q)
	if err != nil {
		logger.FromGin(c).Error("operation log list failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "log listing failed"})
		return
	}
	if q.Current <= 0 {
		q.Current = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = 20
	}
	c.JSON(http.StatusOK, logPage{List: entries, Total: total, Current: q.Current, PageSize: q.PageSize})
}
