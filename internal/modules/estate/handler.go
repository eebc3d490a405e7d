package estate

import (
	"github.com/drink365/estate-tax-app/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type CalcDTO struct {
	TotalAssets float64       `json:"total_assets" binding:"required,min=1000,max=100000"`
	Family      FamilyProfile `json:"family"`
}

type SimulateDTO struct {
	TotalAssets float64       `json:"total_assets" binding:"required,min=1000,max=100000"`
	Family      FamilyProfile `json:"family"`
	Premium     float64       `json:"premium"    binding:"min=0"`
	Claim       float64       `json:"claim"      binding:"min=0"`
	Gift        float64       `json:"gift"       binding:"min=0"`
	GiftYears   int           `json:"gift_years" binding:"min=0,max=30"`
}

type Handler struct {
	calc *Calculator
	sim  *Simulator
}

func NewHandler() *Handler {
	calc := NewCalculator(DefaultConstants())
	return &Handler{calc: calc, sim: NewSimulator(calc)}
}

// RegisterRoutes mounts the estate endpoints; all of them require a session.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	e := rg.Group("/estate", guard)
	e.POST("/calc", h.calculate)
	e.POST("/simulate", h.simulate)
}

func (h *Handler) calculate(c *gin.Context) {
	var dto CalcDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, h.calc.EstateTax(dto.TotalAssets, dto.Family))
}

func (h *Handler) simulate(c *gin.Context) {
	var dto SimulateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.Premium > dto.TotalAssets {
		response.BadRequest(c, "保費不得高於總資產")
		return
	}
	if dto.Gift > dto.TotalAssets-dto.Premium {
		response.BadRequest(c, "提前贈與金額不得高於【總資產】-【保費】")
		return
	}

	out := gin.H{
		"comparison": h.sim.CompareStrategies(dto.TotalAssets, dto.Family, dto.Premium, dto.Claim, dto.Gift),
	}
	if dto.GiftYears > 0 {
		out["gift_plan"] = h.sim.SimulateGift(dto.TotalAssets, dto.Family, dto.GiftYears)
	}
	response.OK(c, out)
}
