package domain

// Glyph tags understood by the public site for ServiceItem.Icon.
const (
	IconBuilding  = "building"
	IconWarehouse = "warehouse"
	IconWrench    = "wrench"
	IconFactory   = "factory"
)

// FallbackServices is what the public site shows until services have been
// stored. Stored services replace it entirely once at least one exists.
func FallbackServices() []*ServiceItem {
	return []*ServiceItem{
		{
			ID:          "fallback-construction",
			Icon:        IconBuilding,
			Title:       "Строительные объекты",
			Description: "Разнорабочие, подсобники, бетонщики, каменщики — любые строительные специальности для объектов любого масштаба",
			Features:    []string{"Жилые комплексы", "Коммерческая недвижимость", "Инфраструктура"},
			OrderIndex:  0,
		},
		{
			ID:          "fallback-warehouse",
			Icon:        IconWarehouse,
			Title:       "Складские работы",
			Description: "Грузчики, комплектовщики, упаковщики — слаженная работа на складах любой сложности",
			Features:    []string{"Погрузка/разгрузка", "Комплектация заказов", "Инвентаризация"},
			OrderIndex:  1,
		},
		{
			ID:          "fallback-installation",
			Icon:        IconWrench,
			Title:       "Монтажные работы",
			Description: "Монтажники металлоконструкций, сборщики, слесари — точная и безопасная работа на высоте и на земле",
			Features:    []string{"Металлоконструкции", "Оборудование", "Инженерные системы"},
			OrderIndex:  2,
		},
		{
			ID:          "fallback-industrial",
			Icon:        IconFactory,
			Title:       "Промышленные работы",
			Description: "Операторы станков, наладчики, разнорабочие на производство — бесперебойная работа вашего предприятия",
			Features:    []string{"Производственные линии", "Техобслуживание", "Подсобные работы"},
			OrderIndex:  3,
		},
	}
}
