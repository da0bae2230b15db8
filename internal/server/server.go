package server

// Server объединяет HTTP-обработчики отдельных сущностей
type Server struct {
	DealServer
	BuyerServer
	AdminServer
}

func NewServer(
	dealServer DealServer,
	buyerServer BuyerServer,
	adminServer AdminServer,
) Server {
	return Server{
		DealServer:  dealServer,
		BuyerServer: buyerServer,
		AdminServer: adminServer,
	}
}
