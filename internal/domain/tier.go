package domain

// Лимиты растений по тарифам
const (
	FreePlantLimit  = 5
	BasicPlantLimit = 25
)

// CanAddPlant решает, может ли пользователь с данным тарифом добавить
// еще одно растение при текущем количестве. Неизвестный тариф — отказ.
func CanAddPlant(tier SubscriptionTier, currentCount int) bool {
	switch tier {
	case TierFree:
		return currentCount < FreePlantLimit
	case TierBasic:
		return currentCount < BasicPlantLimit
	case TierPremium:
		return true
	default:
		return false
	}
}
