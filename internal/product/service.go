package product

// ServiceInterface is what the handler depends on; tests swap in fakes.
type ServiceInterface interface {
	List() []Product
	GetByID(id int) (Product, error)
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}
