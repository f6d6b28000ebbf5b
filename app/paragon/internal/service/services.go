package service

// Services 按依赖顺序组装的全部玩法服务
type Services struct {
	Item      *ItemService
	Combat    *CombatService
	Inventory *InventoryService
	Flight    *FlightService
	Pickup    *PickupService
}

// NewServices 创建玩法服务
func NewServices(env *Env) *Services {
	item := NewItemService(env)
	combat := NewCombatService(env, item)
	inventory := NewInventoryService(env, item, combat)
	flight := NewFlightService(env, item)
	pickup := NewPickupService(env, item, flight, inventory, combat)
	return &Services{
		Item:      item,
		Combat:    combat,
		Inventory: inventory,
		Flight:    flight,
		Pickup:    pickup,
	}
}
