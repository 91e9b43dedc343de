package providers

import (
	"github.com/samber/do/v2"

	"github.com/pinstackapp/pinstack-server/internal/logger"
	"github.com/pinstackapp/pinstack-server/internal/service"
	"github.com/pinstackapp/pinstack-server/internal/validation"
)

// ProvideBoardService provides the board hierarchy service.
func ProvideBoardService(i do.Injector) (*service.BoardService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)

	return service.NewBoardService(storeHandle.Store, log.Logger, v), nil
}

// ProvideItemService provides the media item service.
func ProvideItemService(i do.Injector) (*service.ItemService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)

	return service.NewItemService(storeHandle.Store, log.Logger, v), nil
}

// ProvideCategorizationService provides the auto-categorization service.
func ProvideCategorizationService(i do.Injector) (*service.CategorizationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	boards := do.MustInvoke[*service.BoardService](i)
	suggesterHandle := do.MustInvoke[SuggesterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCategorizationService(storeHandle.Store, boards, suggesterHandle.Suggester, log.Logger), nil
}
