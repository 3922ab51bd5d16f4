package plants

import (
	"log"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/history"
)

type Handler struct {
	Log      *log.Logger
	Storage  domain.ImageStorage
	Analyzer domain.PlantAnalyzer
	Cache    domain.Cache
	History  *history.Log

	ResultTTL int // секунд; кеш результата распознавания
}

// тип записи в лентах истории
const entryTypePlantID = "plant_identification"
