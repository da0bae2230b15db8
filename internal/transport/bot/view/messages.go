package view

const StartMessage = `👋 <b>Dealflow admin</b>

/status — состояние рассылки и KPI
/sweep — разослать ожидающие совпадения сейчас
/startsweep — включить рассылку по расписанию
/stopsweep — выключить рассылку по расписанию
/tier <code>BUYER_ID</code> <code>free|paid|enterprise</code> — сменить тариф покупателя`

const StatusTemplate = `📊 <b>Статус системы</b>

📬 <b>Рассылка:</b> %s

📦 <b>Сделок всего:</b> %d (сегодня %d)
🟢 %d  🟡 %d  🔴 %d
💵 <b>Средняя цена:</b> $%s
👥 <b>Активных покупателей:</b> %d

🔗 <b>Совпадения:</b> ожидают %d, связались %d, ошибка %d`

const (
	SweeperRunning = "🟢 работает"
	SweeperStopped = "🔴 остановлена"

	SweepStarted        = "Рассылка по расписанию запущена!"
	SweepAlreadyRunning = "Рассылка уже запущена!"
	SweepStopped        = "Рассылка остановлена!"
	SweepNotRunning     = "Рассылка не запущена!"
	SweepStartFailed    = "Ошибка запуска рассылки: %v"

	SweepResultTemplate = "✅ Обработано %d: связались %d, ошибка %d, пропущено %d"
	SweepSkipped        = "⏳ Рассылка уже идёт на другом узле"
	SweepFailed         = "❌ Ошибка рассылки: %v"

	TierUsage   = "❌ Использование: /tier <code>BUYER_ID</code> <code>free|paid|enterprise</code>"
	TierUpdated = "✅ Покупатель <code>%s</code>: тариф <b>%s</b>"
	TierFailed  = "❌ Не удалось сменить тариф: %s"

	KPIError = "❌ Не удалось получить KPI"
)
