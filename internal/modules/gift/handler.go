package gift

import (
	"github.com/drink365/estate-tax-app/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type PlanDTO struct {
	AnnualPremium int64 `json:"annual_premium" binding:"min=0"`
	ChangeYear    int   `json:"change_year"    binding:"required,min=1,max=3"`
	CashValue1    int64 `json:"cash_value_1"   binding:"min=0"`
	CashValue2    int64 `json:"cash_value_2"   binding:"min=0"`
	CashValue3    int64 `json:"cash_value_3"   binding:"min=0"`
}

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// RegisterRoutes mounts the gift-planning endpoints behind the session guard.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	g := rg.Group("/gift", guard)
	g.POST("/plan", h.plan)
}

func (h *Handler) plan(c *gin.Context) {
	var dto PlanDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	summary := SummarizePlan(dto.AnnualPremium, dto.ChangeYear, map[int]int64{
		1: dto.CashValue1,
		2: dto.CashValue2,
		3: dto.CashValue3,
	})
	response.OK(c, summary)
}
