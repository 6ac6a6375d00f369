package flow

const (
	textWelcome = "🎣 Приветствуем вас на регистрации Международного семейного рыболовного фестиваля 2025 «Папа,мама,я-рыболовная семья»! 🎣\n\n" +
		"📅 Дата фестиваля:\n31 мая (1 тур)\n1 июня (2 тур)\n\n" +
		"📍 Место проведения: Залив р.Волги, п.Займище\n\n" +
		"Выберите, как вы хотите участвовать в фестивале:"

	textAskDate          = "📅 Выберите дату посещения:"
	textDateChosen       = "📅 Вы выбрали дату: %s"
	textAskAttendance    = "👥 Выберите, как вы планируете прийти:"
	textAttendanceChosen = "👥 Вы выбрали прийти %s"
	textAskNameAge       = "📝 Укажите Ваше имя и возраст (или возраст членов вашей семьи):"

	textSpectatorComplete = "✅ Регистрация успешно завершена!\n\n" +
		"📞 По любым организационным вопросам вы можете обращаться по номеру тел.: 89……….\n\n" +
		"🎣 Благодарим Вас за регистрацию! И ждём Вас/вашу семью на Фестивале!"

	textAskTeamSize       = "👥 Какое количество человек в вашей команде (от 2 до 5)?"
	textTeamSizeChosen    = "👥 Вы выбрали команду из %s человек"
	textAskTeamName       = "📝 Укажите название вашей команды:"
	textAskLocation       = "📍 Какой населенный пункт/регион/страну вы представляете?"
	textAskParticipants   = "📝 Укажите ФИО участников и их даты рождения:"
	textAskSpecialStatus  = "❓ Есть ли в семье дети-инвалиды или является ли кто-то из членов семьи участником/ветераном СВО?"
	textAskPhonePreferred = "✅ Ваша семья примет участие в фестивале на льготных условиях.\n\n📞 Пожалуйста, укажите ваш контактный номер телефона для связи с вами:"
	textAskPhone          = "📞 Пожалуйста, укажите ваш контактный номер телефона:"
	textAskAccommodation  = "🏠 Выберите подходящий пакет с пребыванием в ночное время:"
	textPriceQuote        = "💰 Стоимость размещения:\nВзрослый: %d₽\nРебенок: %d₽"

	textParticipantComplete = "✅ Поздравляем, Ваша семья примет участие в Международном семейном рыболовном фестивале 2025 «Папа, мама, я - рыболовная семья»!\n\n" +
		"🎣 Благодарим Вас за регистрацию и до встречи на незабываемом событии этого года!"

	textRegistrationFailed = "❌ Произошла ошибка при регистрации. Пожалуйста, попробуйте позже."

	textHintButtons = "👆 Пожалуйста, выберите один из вариантов с помощью кнопок выше."
	textHintText    = "✍️ Пожалуйста, отправьте ответ текстовым сообщением."
)

// Keyboard widths per option set.
const (
	rowsRoles          = 1
	rowsVisitDates     = 1
	rowsAttendance     = 1
	rowsTeamSizes      = 2
	rowsSpecialStatus  = 2
	rowsAccommodations = 1
)
