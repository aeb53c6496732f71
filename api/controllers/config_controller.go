package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/configd/presentation"
	"github.com/moyoez/configd/settings"
	"github.com/moyoez/configd/tool"
	"github.com/moyoez/configd/types"
)

// ConfigController serves the GUI config held by a settings.Store.
type ConfigController struct {
	store *settings.Store
	state *presentation.State
}

func NewConfigController(store *settings.Store, state *presentation.State) *ConfigController {
	return &ConfigController{store: store, state: state}
}

// HandleStatus reports whether the daemon is running and the store has a config.
// GET /api/self/v1/status
func (ctrl *ConfigController) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, types.StatusResponse{
		Running: true,
		Loading: ctrl.store.Loading(),
		Loaded:  ctrl.store.Snapshot() != nil,
	})
}

// HandleConfigGet returns the current snapshot (null before the first load).
// GET /api/self/v1/config
func (ctrl *ConfigController) HandleConfigGet(c *gin.Context) {
	c.JSON(http.StatusOK, types.ConfigResponse{Config: ctrl.store.Snapshot()})
}

// HandleConfigPatch merges a partial config. An empty object clears the snapshot.
// PATCH /api/self/v1/config
func (ctrl *ConfigController) HandleConfigPatch(c *gin.Context) {
	var body types.ConfigPatch
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	if body.IsEmpty() {
		tool.DefaultLogger.Warnf("Empty config patch from %s, clearing snapshot", c.ClientIP())
	}
	ctrl.store.Update(body)
	c.JSON(http.StatusOK, types.ConfigResponse{Config: ctrl.store.Snapshot()})
}

// HandleConfigReload re-runs the load path (migration check, read, fallback).
// POST /api/self/v1/config/reload
func (ctrl *ConfigController) HandleConfigReload(c *gin.Context) {
	cfg := ctrl.store.Load(c.Request.Context())
	if cfg == nil {
		c.JSON(http.StatusOK, types.ReloadResponse{Loaded: false, Config: ctrl.store.Snapshot()})
		return
	}
	c.JSON(http.StatusOK, types.ReloadResponse{Loaded: true, Config: cfg})
}

// HandleConfigReset replaces every field with the defaults.
// POST /api/self/v1/config/reset
func (ctrl *ConfigController) HandleConfigReset(c *gin.Context) {
	ctrl.store.Update(types.FullPatch(settings.DefaultConfig()))
	tool.DefaultLogger.Infof("Config reset to defaults by %s", c.ClientIP())
	c.JSON(http.StatusOK, types.ConfigResponse{Config: ctrl.store.Snapshot()})
}

// HandleConfigFlush writes a pending debounced change immediately.
// POST /api/self/v1/config/flush
func (ctrl *ConfigController) HandleConfigFlush(c *gin.Context) {
	ctrl.store.Flush()
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}

// HandlePresentationGet returns the live theme/font values.
// GET /api/self/v1/presentation
func (ctrl *ConfigController) HandlePresentationGet(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(ctrl.state.Current()))
}
