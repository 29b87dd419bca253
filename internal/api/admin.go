package admin

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	model "github.com/glkeru/plagadmin/internal/models"
	service "github.com/glkeru/plagadmin/internal/services"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type AdminHandler struct {
	router  *mux.Router
	users   *service.UserLedger
	promos  *service.PromoRegistry
	pricing *service.PricingService
	checks  *service.CheckFeed
	logger  *zap.Logger
}

func NewHandler(users *service.UserLedger, promos *service.PromoRegistry, pricing *service.PricingService, checks *service.CheckFeed, logger *zap.Logger) *AdminHandler {
	router := mux.NewRouter()
	handler := &AdminHandler{router, users, promos, pricing, checks, logger}
	router.Use(MiddlewareLog())
	router.HandleFunc("/users", handler.UsersHandler).Methods(http.MethodGet)
	router.HandleFunc("/user/{id}/balance", handler.AdjustBalanceHandler).Methods(http.MethodPost)
	router.HandleFunc("/promos", handler.PromosHandler).Methods(http.MethodGet)
	router.HandleFunc("/promos/stats", handler.PromoStatsHandler).Methods(http.MethodGet)
	router.HandleFunc("/promo", handler.CreatePromoHandler).Methods(http.MethodPost)
	router.HandleFunc("/promo/{id}", handler.DeletePromoHandler).Methods(http.MethodDelete)
	router.HandleFunc("/pricing", handler.PricingHandler).Methods(http.MethodGet)
	router.HandleFunc("/pricing", handler.UpdatePricingHandler).Methods(http.MethodPost)
	router.HandleFunc("/pricing/save", handler.SavePricingHandler).Methods(http.MethodPost)
	router.HandleFunc("/checks", handler.ChecksHandler).Methods(http.MethodGet)
	router.HandleFunc("/checks/stats", handler.CheckStatsHandler).Methods(http.MethodGet)
	router.HandleFunc("/summary", handler.SummaryHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return handler
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, res *http.Request) {
	h.router.ServeHTTP(w, res)
}

func (h *AdminHandler) Log(msg string, service string, err error) {
	h.logger.Error(msg,
		zap.String("service", service),
		zap.Error(err),
	)
}

// Статус ответа по виду ошибки: некорректный ввод, нет записи, все остальное - внешняя ошибка
func httpStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *AdminHandler) writeJSON(w http.ResponseWriter, service string, v any) {
	j, err := json.Marshal(v)
	if err != nil {
		h.Log("Marshal", service, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(j)
}

// Поиск пользователей
func (h *AdminHandler) UsersHandler(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query().Get("query")
	users := h.users.Search(query)
	h.writeJSON(w, "UsersHandler", users)
}

type AdjustRequest struct {
	Delta  string `json:"delta"`
	Reason string `json:"reason"`
}

// Корректировка баланса
func (h *AdminHandler) AdjustBalanceHandler(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)

	body, err := io.ReadAll(req.Body)
	if err != nil {
		h.Log("Get request body", "AdjustBalanceHandler", err)
		http.Error(w, "Body is empty", http.StatusBadRequest)
		return
	}
	defer req.Body.Close()

	adjust := &AdjustRequest{}
	err = json.Unmarshal(body, adjust)
	if err != nil {
		h.Log("Unmarshal", "AdjustBalanceHandler", err)
		http.Error(w, "Body is not correct", http.StatusBadRequest)
		return
	}

	user, err := h.users.AdjustBalance(vars["id"], adjust.Delta, adjust.Reason)
	if err != nil {
		if httpStatus(err) == http.StatusInternalServerError {
			h.Log("AdjustBalance", "AdjustBalanceHandler", err)
		}
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
	h.writeJSON(w, "AdjustBalanceHandler", user)
}

// Промокод с производными полями для таблицы
type PromoView struct {
	model.PromoCode
	UsageRatio float64                `json:"usage_ratio"`
	Status     model.ExpirationStatus `json:"status"`
	Expires    string                 `json:"expires"`
}

// Список промокодов
func (h *AdminHandler) PromosHandler(w http.ResponseWriter, req *http.Request) {
	now := time.Now()
	codes := h.promos.All()
	views := make([]PromoView, len(codes))
	for i, c := range codes {
		views[i] = PromoView{
			PromoCode:  c,
			UsageRatio: h.promos.UsageRatio(c),
			Status:     h.promos.Status(c, now),
			Expires:    c.ExpiresAt.Format("2006-01-02"),
		}
	}
	h.writeJSON(w, "PromosHandler", views)
}

// Агрегаты по промокодам
func (h *AdminHandler) PromoStatsHandler(w http.ResponseWriter, req *http.Request) {
	stats, err := h.promos.Stats(req.Context())
	if err != nil {
		h.Log("Stats", "PromoStatsHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, "PromoStatsHandler", stats)
}

// Создание промокода
func (h *AdminHandler) CreatePromoHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		h.Log("Get request body", "CreatePromoHandler", err)
		http.Error(w, "Body is empty", http.StatusBadRequest)
		return
	}
	defer req.Body.Close()

	spec := &service.PromoSpec{}
	err = json.Unmarshal(body, spec)
	if err != nil {
		h.Log("Unmarshal", "CreatePromoHandler", err)
		http.Error(w, "Body is not correct", http.StatusBadRequest)
		return
	}

	promo, err := h.promos.Create(*spec)
	if err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
	h.writeJSON(w, "CreatePromoHandler", promo)
}

// Удаление промокода
func (h *AdminHandler) DeletePromoHandler(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	err = h.promos.Delete(id)
	if err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
}

type PricingResponse struct {
	Config     model.PricingConfig `json:"config"`
	HasChanges bool                `json:"has_changes"`
}

// Текущие настройки тарификации
func (h *AdminHandler) PricingHandler(w http.ResponseWriter, req *http.Request) {
	cfg, dirty := h.pricing.Config()
	h.writeJSON(w, "PricingHandler", PricingResponse{cfg, dirty})
}

// Изменения полей формы, числовые значения приходят текстом
type PricingUpdate struct {
	Mode          *string `json:"mode"`
	BasePrice     *string `json:"base_price"`
	PricePerUnit  *string `json:"price_per_unit"`
	MaxBonusUsage *int    `json:"max_bonus_usage"`
	InviterReward *string `json:"inviter_reward"`
	InviteeReward *string `json:"invitee_reward"`
}

// Изменение настроек (без сохранения)
func (h *AdminHandler) UpdatePricingHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		h.Log("Get request body", "UpdatePricingHandler", err)
		http.Error(w, "Body is empty", http.StatusBadRequest)
		return
	}
	defer req.Body.Close()

	update := &PricingUpdate{}
	err = json.Unmarshal(body, update)
	if err != nil {
		h.Log("Unmarshal", "UpdatePricingHandler", err)
		http.Error(w, "Body is not correct", http.StatusBadRequest)
		return
	}

	if update.Mode != nil {
		err = h.pricing.SetMode(*update.Mode)
	}
	if err == nil && update.BasePrice != nil {
		err = h.pricing.SetBasePrice(*update.BasePrice)
	}
	if err == nil && update.PricePerUnit != nil {
		err = h.pricing.SetPricePerUnit(*update.PricePerUnit)
	}
	if err == nil && update.MaxBonusUsage != nil {
		err = h.pricing.SetMaxBonusUsage(*update.MaxBonusUsage)
	}
	if err == nil && update.InviterReward != nil {
		err = h.pricing.SetInviterReward(*update.InviterReward)
	}
	if err == nil && update.InviteeReward != nil {
		err = h.pricing.SetInviteeReward(*update.InviteeReward)
	}
	if err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}

	cfg, dirty := h.pricing.Config()
	h.writeJSON(w, "UpdatePricingHandler", PricingResponse{cfg, dirty})
}

// Сохранение настроек во внешнее хранилище
func (h *AdminHandler) SavePricingHandler(w http.ResponseWriter, req *http.Request) {
	err := h.pricing.Save(req.Context())
	if err != nil {
		h.Log("SaveConfig", "SavePricingHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Журнал проверок с фильтром по статусу
func (h *AdminHandler) ChecksHandler(w http.ResponseWriter, req *http.Request) {
	status := req.URL.Query().Get("status")
	h.writeJSON(w, "ChecksHandler", h.checks.Filter(status))
}

// Счетчики журнала
func (h *AdminHandler) CheckStatsHandler(w http.ResponseWriter, req *http.Request) {
	h.writeJSON(w, "CheckStatsHandler", h.checks.Counts())
}

// Сводка дашборда
func (h *AdminHandler) SummaryHandler(w http.ResponseWriter, req *http.Request) {
	summary, err := h.checks.Summary(req.Context(), time.Now())
	if err != nil {
		h.Log("Summary", "SummaryHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, "SummaryHandler", summary)
}
