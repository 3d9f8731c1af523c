package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ist-rebalancer/internal/application/dto"
	apprebalance "github.com/jhoicas/ist-rebalancer/internal/application/rebalance"
	"github.com/jhoicas/ist-rebalancer/internal/domain"
	"github.com/jhoicas/ist-rebalancer/pkg/logger"
)

// RebalanceHandler maneja las corridas de traslados y el reparto de bodega.
type RebalanceHandler struct {
	uc  *apprebalance.UseCase
	log *logger.Logger
}

// NewRebalanceHandler construye el handler.
func NewRebalanceHandler(uc *apprebalance.UseCase, log *logger.Logger) *RebalanceHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &RebalanceHandler{uc: uc, log: log}
}

// Run godoc
// @Summary      Ejecutar corrida de traslados entre tiendas
// @Description  Procesa la planilla de movimientos (CSV o XLSX) y devuelve la tabla agregada
//
//	con métricas y el libro de traslados, en JSON o como archivo.
//
// @Tags         rebalance
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Produce      application/pdf
// @Param        variant                 path      string  true   "network | regional | assortment"
// @Param        file                    formData  file    true   "Planilla de movimientos (.csv / .xlsx)"
// @Param        season_launch_date      formData  string  true   "Fecha de lanzamiento (YYYY-MM-DD)"
// @Param        sell_through_threshold  formData  int     false  "Umbral de sell-through 0-100"
// @Param        days_threshold          formData  int     false  "Edad mínima en días"
// @Param        format                  query     string  false  "json | xlsx | csv | pdf"  default(json)
// @Param        table                   query     string  false  "rows | transfers | all_rows (solo csv)"
// @Success      200  {object}  dto.RebalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/rebalance/{variant} [post]
func (h *RebalanceHandler) Run(c *fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", apprebalance.FormatJSON))
	switch format {
	case apprebalance.FormatJSON, apprebalance.FormatXLSX, apprebalance.FormatCSV, apprebalance.FormatPDF:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json, xlsx, csv o pdf"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo 'file' requerido (multipart/form-data)"})
	}
	sellThrough, err := formInt(c, "sell_through_threshold")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	days, err := formInt(c, "days_threshold")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	report, err := h.uc.Rebalance(c.UserContext(), dto.RebalanceRequest{
		Variant:              c.Params("variant"),
		FileName:             fh.Filename,
		SeasonLaunchDate:     c.FormValue("season_launch_date"),
		SellThroughThreshold: sellThrough,
		DaysThreshold:        days,
	}, f)
	if err != nil {
		return h.writeError(c, err)
	}

	if format == apprebalance.FormatJSON {
		return c.JSON(apprebalance.ToResponse(report))
	}
	file, err := h.uc.Export(c.UserContext(), report, format, c.Query("table"))
	if err != nil {
		return h.writeError(c, err)
	}
	return sendFile(c, file)
}

// Allocate godoc
// @Summary      Repartir stock de bodega entre tiendas (surtido)
// @Description  Asigna cada UPC de la planilla de bodega a las tiendas High, de mayor a menor
//
//	sell-through, con tope en la venta de cada tienda.
//
// @Tags         rebalance
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Produce      text/csv
// @Param        file                    formData  file    true   "Planilla de surtido (.csv / .xlsx)"
// @Param        allocation_file         formData  file    true   "Planilla de bodega con UPC y QTY"
// @Param        sell_through_threshold  formData  int     false  "Umbral de sell-through 0-100"
// @Param        season_launch_date      formData  string  false  "Fecha de lanzamiento (YYYY-MM-DD)"
// @Param        format                  query     string  false  "json | csv"  default(json)
// @Success      200  {object}  dto.AllocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/assortment/allocate [post]
func (h *RebalanceHandler) Allocate(c *fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", apprebalance.FormatJSON))
	if format != apprebalance.FormatJSON && format != apprebalance.FormatCSV {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json o csv"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo 'file' requerido"})
	}
	ah, err := c.FormFile("allocation_file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo 'allocation_file' requerido"})
	}
	sellThrough, err := formInt(c, "sell_through_threshold")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()
	af, err := ah.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo abrir el archivo de bodega"})
	}
	defer af.Close()

	report, err := h.uc.Allocate(c.UserContext(), dto.AllocationRequest{
		FileName:             fh.Filename,
		AllocationFileName:   ah.Filename,
		SeasonLaunchDate:     c.FormValue("season_launch_date"),
		SellThroughThreshold: sellThrough,
	}, f, af)
	if err != nil {
		return h.writeError(c, err)
	}

	if format == apprebalance.FormatJSON {
		return c.JSON(apprebalance.ToAllocationResponse(report))
	}
	file, err := h.uc.ExportAllocation(c.UserContext(), report, format)
	if err != nil {
		return h.writeError(c, err)
	}
	return sendFile(c, file)
}

// writeError traduce errores de dominio a dto.ErrorResponse.
func (h *RebalanceHandler) writeError(c *fiber.Ctx, err error) error {
	var schemaErr *domain.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "SCHEMA", Message: schemaErr.Error()})
	case errors.Is(err, domain.ErrUnknownVariant):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_VARIANT", Message: "variante desconocida: use network, regional o assortment"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnreadableInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("corrida IST fallida")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func sendFile(c *fiber.Ctx, file *dto.ExportFile) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Status(fiber.StatusOK).Send(file.Content)
}

// formInt lee un entero opcional del formulario; vacío → nil.
func formInt(c *fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s debe ser un entero", key)
	}
	return &n, nil
}
