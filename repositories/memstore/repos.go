package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"homestay/constants"
	apperrors "homestay/errors"
	"homestay/models"
	"homestay/repositories"
)

func duplicate(message string) error {
	return apperrors.Conflict(apperrors.ErrCodeDBDuplicate, message)
}

type userRepo struct{ s *Store }

func (r *userRepo) checkUnique(u *models.User) error {
	for id, other := range r.s.d.users {
		if id != u.ID && strings.EqualFold(other.Email, u.Email) {
			return duplicate("Email đã được sử dụng")
		}
	}
	return nil
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.create"); err != nil {
		return err
	}
	if err := r.checkUnique(u); err != nil {
		return err
	}
	u.ID = r.s.d.id()
	u.CreatedAt = r.s.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.d.users[u.ID] = *u
	return nil
}

func (r *userRepo) Save(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(u); err != nil {
		return err
	}
	u.UpdatedAt = r.s.Now()
	r.s.d.users[u.ID] = *u
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.d.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *userRepo) List(ctx context.Context, f repositories.UserFilter) ([]models.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.User
	for _, u := range r.s.d.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Active != nil && u.IsActive != *f.Active {
			continue
		}
		if f.Query != "" && !contains(u.Name, f.Query) && !contains(u.Email, f.Query) {
			continue
		}
		out = append(out, u)
	}
	sortByID(out, func(u models.User) uint { return u.ID })
	return page(out, f.Page), int64(len(out)), nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.d.users)), nil
}

type locationRepo struct{ s *Store }

func (r *locationRepo) Create(ctx context.Context, l *models.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = r.s.d.id()
	l.CreatedAt = r.s.Now()
	l.UpdatedAt = l.CreatedAt
	cp := *l
	cp.Units = nil
	r.s.d.locations[l.ID] = cp
	return nil
}

func (r *locationRepo) Save(ctx context.Context, l *models.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.UpdatedAt = r.s.Now()
	cp := *l
	cp.Units = nil
	r.s.d.locations[l.ID] = cp
	return nil
}

func (r *locationRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.locations[id]; !ok {
		return apperrors.ErrLocationNotFound
	}
	for _, u := range r.s.d.units {
		if u.LocationID == id {
			return apperrors.Conflict(apperrors.ErrCodeInUse, "Dữ liệu đang được sử dụng ở nơi khác")
		}
	}
	delete(r.s.d.locations, id)
	return nil
}

func (r *locationRepo) FindByID(ctx context.Context, id uint) (*models.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.d.locations[id]
	if !ok {
		return nil, apperrors.ErrLocationNotFound
	}
	for _, u := range r.s.d.units {
		if u.LocationID == id {
			l.Units = append(l.Units, u)
		}
	}
	sort.Slice(l.Units, func(i, j int) bool { return l.Units[i].Code < l.Units[j].Code })
	return &l, nil
}

func (r *locationRepo) List(ctx context.Context, f repositories.LocationFilter) ([]models.Location, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Location
	for _, l := range r.s.d.locations {
		if f.Query != "" && !contains(l.Name, f.Query) && !contains(l.City, f.Query) && !contains(l.Address, f.Query) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, f.Page), int64(len(out)), nil
}

type unitRepo struct{ s *Store }

func (r *unitRepo) checkUnique(u *models.Unit) error {
	for id, other := range r.s.d.units {
		if id != u.ID && other.Code == u.Code {
			return duplicate("Mã phòng đã tồn tại")
		}
	}
	return nil
}

func (r *unitRepo) store(u *models.Unit) {
	cp := *u
	cp.Location = nil
	r.s.d.units[u.ID] = cp
}

func (r *unitRepo) hydrate(u models.Unit) *models.Unit {
	if l, ok := r.s.d.locations[u.LocationID]; ok {
		u.Location = &l
	}
	return &u
}

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("units.create"); err != nil {
		return err
	}
	if err := r.checkUnique(u); err != nil {
		return err
	}
	u.ID = r.s.d.id()
	u.CreatedAt = r.s.Now()
	u.UpdatedAt = u.CreatedAt
	r.store(u)
	return nil
}

func (r *unitRepo) Save(ctx context.Context, u *models.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(u); err != nil {
		return err
	}
	u.UpdatedAt = r.s.Now()
	r.store(u)
	return nil
}

func (r *unitRepo) FindByID(ctx context.Context, id uint) (*models.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.units[id]
	if !ok {
		return nil, apperrors.ErrUnitNotFound
	}
	return r.hydrate(u), nil
}

func (r *unitRepo) FindByIDForUpdate(ctx context.Context, id uint) (*models.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.units[id]
	if !ok {
		return nil, apperrors.ErrUnitNotFound
	}
	return &u, nil
}

func (r *unitRepo) List(ctx context.Context, f repositories.UnitFilter) ([]models.Unit, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Unit
	for _, u := range r.s.d.units {
		if f.LocationID != 0 && u.LocationID != f.LocationID {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		if f.Query != "" && !contains(u.Code, f.Query) && !contains(u.Name, f.Query) {
			continue
		}
		out = append(out, *r.hydrate(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, f.Page), int64(len(out)), nil
}

func (r *unitRepo) CountByLocation(ctx context.Context, locationID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, u := range r.s.d.units {
		if u.LocationID == locationID {
			n++
		}
	}
	return n, nil
}

type guestRepo struct{ s *Store }

func (r *guestRepo) checkUnique(g *models.Guest) error {
	if g.Email == nil {
		return nil
	}
	for id, other := range r.s.d.guests {
		if id != g.ID && other.Email != nil && strings.EqualFold(*other.Email, *g.Email) {
			return duplicate("Email khách đã tồn tại")
		}
	}
	return nil
}

func (r *guestRepo) store(g *models.Guest) {
	cp := *g
	cp.Reservations = nil
	r.s.d.guests[g.ID] = cp
}

func (r *guestRepo) Create(ctx context.Context, g *models.Guest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(g); err != nil {
		return err
	}
	g.ID = r.s.d.id()
	g.CreatedAt = r.s.Now()
	g.UpdatedAt = g.CreatedAt
	r.store(g)
	return nil
}

func (r *guestRepo) Save(ctx context.Context, g *models.Guest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(g); err != nil {
		return err
	}
	g.UpdatedAt = r.s.Now()
	r.store(g)
	return nil
}

func (r *guestRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.guests[id]; !ok {
		return apperrors.ErrGuestNotFound
	}
	for _, res := range r.s.d.reservations {
		if res.GuestID == id {
			return apperrors.Conflict(apperrors.ErrCodeInUse, "Dữ liệu đang được sử dụng ở nơi khác")
		}
	}
	delete(r.s.d.guests, id)
	return nil
}

func (r *guestRepo) FindByID(ctx context.Context, id uint) (*models.Guest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.d.guests[id]
	if !ok {
		return nil, apperrors.ErrGuestNotFound
	}
	return &g, nil
}

func (r *guestRepo) List(ctx context.Context, f repositories.GuestFilter) ([]models.Guest, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Guest
	for _, g := range r.s.d.guests {
		if f.Query != "" {
			email := ""
			if g.Email != nil {
				email = *g.Email
			}
			if !contains(g.FullName, f.Query) && !contains(g.PhoneNumber, f.Query) && !contains(email, f.Query) {
				continue
			}
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return page(out, f.Page), int64(len(out)), nil
}

type reservationRepo struct{ s *Store }

func (r *reservationRepo) store(res *models.Reservation) {
	cp := *res
	cp.Unit = nil
	cp.Guest = nil
	cp.DepositEvents = nil
	r.s.d.reservations[res.ID] = cp
}

func (r *reservationRepo) hydrate(res models.Reservation) *models.Reservation {
	if u, ok := r.s.d.units[res.UnitID]; ok {
		if l, ok := r.s.d.locations[u.LocationID]; ok {
			u.Location = &l
		}
		res.Unit = &u
	}
	if g, ok := r.s.d.guests[res.GuestID]; ok {
		res.Guest = &g
	}
	return &res
}

func (r *reservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("reservations.create"); err != nil {
		return err
	}
	if _, ok := r.s.d.units[res.UnitID]; !ok {
		return apperrors.Conflict(apperrors.ErrCodeInUse, "Dữ liệu đang được sử dụng ở nơi khác")
	}
	if res.Code == "" {
		res.Code = models.NewReservationCode(r.s.Now())
	}
	if res.DepositStatus == "" {
		res.DepositStatus = constants.DepositNotRequired
	}
	res.ID = r.s.d.id()
	res.CreatedAt = r.s.Now()
	res.UpdatedAt = res.CreatedAt
	r.store(res)
	return nil
}

func (r *reservationRepo) Save(ctx context.Context, res *models.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("reservations.save"); err != nil {
		return err
	}
	if _, ok := r.s.d.reservations[res.ID]; !ok {
		return apperrors.ErrReservationNotFound
	}
	res.UpdatedAt = r.s.Now()
	r.store(res)
	return nil
}

func (r *reservationRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.reservations[id]; !ok {
		return apperrors.ErrReservationNotFound
	}
	delete(r.s.d.reservations, id)
	return nil
}

func (r *reservationRepo) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.d.reservations[id]
	if !ok {
		return nil, apperrors.ErrReservationNotFound
	}
	return r.hydrate(res), nil
}

func (r *reservationRepo) FindByIDForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.d.reservations[id]
	if !ok {
		return nil, apperrors.ErrReservationNotFound
	}
	return &res, nil
}

func (r *reservationRepo) FindOverlapping(ctx context.Context, unitID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Reservation
	for _, res := range r.s.d.reservations {
		if res.UnitID != unitID || res.ID == excludeID || !res.Status.IsActive() {
			continue
		}
		if models.Overlaps(res.CheckIn, res.CheckOut, checkIn, checkOut) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

func (r *reservationRepo) List(ctx context.Context, f repositories.ReservationFilter) ([]models.Reservation, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Reservation
	for _, res := range r.s.d.reservations {
		if f.Status != "" && res.Status != f.Status {
			continue
		}
		if f.DepositStatus != "" && res.DepositStatus != f.DepositStatus {
			continue
		}
		if f.DepositOnly && !res.DepositRequired {
			continue
		}
		if f.UnitID != 0 && res.UnitID != f.UnitID {
			continue
		}
		if f.GuestID != 0 && res.GuestID != f.GuestID {
			continue
		}
		if f.LocationID != 0 && r.s.d.units[res.UnitID].LocationID != f.LocationID {
			continue
		}
		if f.From != nil && !res.CheckOut.After(*f.From) {
			continue
		}
		if f.To != nil && !res.CheckIn.Before(*f.To) {
			continue
		}
		out = append(out, *r.hydrate(res))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].ID > out[j].ID
		}
		return out[i].CheckIn.After(out[j].CheckIn)
	})
	return page(out, f.Page), int64(len(out)), nil
}

func (r *reservationRepo) CountByGuest(ctx context.Context, guestID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, res := range r.s.d.reservations {
		if res.GuestID == guestID {
			n++
		}
	}
	return n, nil
}

type eventRepo struct{ s *Store }

func (r *eventRepo) Append(ctx context.Context, e *models.DepositEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("deposit_events.append"); err != nil {
		return err
	}
	e.ID = r.s.d.id()
	e.CreatedAt = r.s.Now()
	cp := *e
	cp.Actor = nil
	r.s.d.events = append(r.s.d.events, cp)
	return nil
}

func (r *eventRepo) ListByReservation(ctx context.Context, reservationID uint) ([]models.DepositEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.DepositEvent
	for _, e := range r.s.d.events {
		if e.ReservationID != reservationID {
			continue
		}
		if e.ActorID != nil {
			if u, ok := r.s.d.users[*e.ActorID]; ok {
				e.Actor = &u
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *eventRepo) CountByReservation(ctx context.Context, reservationID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, e := range r.s.d.events {
		if e.ReservationID == reservationID {
			n++
		}
	}
	return n, nil
}

type taskRepo struct{ s *Store }

func (r *taskRepo) store(t *models.CleaningTask) {
	cp := *t
	cp.Reservation = nil
	cp.Unit = nil
	cp.AssignedTo = nil
	cp.Photos = nil
	r.s.d.tasks[t.ID] = cp
}

func (r *taskRepo) hydrate(t models.CleaningTask, withPhotos bool) *models.CleaningTask {
	if u, ok := r.s.d.units[t.UnitID]; ok {
		t.Unit = &u
	}
	if t.AssignedToID != nil {
		if u, ok := r.s.d.users[*t.AssignedToID]; ok {
			t.AssignedTo = &u
		}
	}
	if withPhotos {
		t.Photos = []models.CleaningPhoto{}
		for _, p := range r.s.d.photos {
			if p.CleaningTaskID == t.ID {
				t.Photos = append(t.Photos, p)
			}
		}
	}
	return &t
}

func (r *taskRepo) Create(ctx context.Context, t *models.CleaningTask) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("cleaning_tasks.create"); err != nil {
		return err
	}
	t.ID = r.s.d.id()
	t.CreatedAt = r.s.Now()
	t.UpdatedAt = t.CreatedAt
	r.store(t)
	return nil
}

func (r *taskRepo) Save(ctx context.Context, t *models.CleaningTask) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.tasks[t.ID]; !ok {
		return apperrors.ErrCleaningNotFound
	}
	t.UpdatedAt = r.s.Now()
	r.store(t)
	return nil
}

func (r *taskRepo) FindByID(ctx context.Context, id uint) (*models.CleaningTask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.d.tasks[id]
	if !ok {
		return nil, apperrors.ErrCleaningNotFound
	}
	return r.hydrate(t, true), nil
}

func (r *taskRepo) FindByIDForUpdate(ctx context.Context, id uint) (*models.CleaningTask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.d.tasks[id]
	if !ok {
		return nil, apperrors.ErrCleaningNotFound
	}
	return &t, nil
}

func (r *taskRepo) List(ctx context.Context, f repositories.CleaningTaskFilter) ([]models.CleaningTask, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.CleaningTask
	for _, t := range r.s.d.tasks {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.AssignedToID != 0 && !t.IsAssignedTo(f.AssignedToID) {
			continue
		}
		if f.UnitID != 0 && t.UnitID != f.UnitID {
			continue
		}
		if f.ReservationID != 0 && t.ReservationID != f.ReservationID {
			continue
		}
		out = append(out, *r.hydrate(t, false))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, f.Page), int64(len(out)), nil
}

func (r *taskRepo) AddPhotos(ctx context.Context, photos []models.CleaningPhoto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range photos {
		photos[i].ID = r.s.d.id()
		photos[i].CreatedAt = r.s.Now()
		r.s.d.photos = append(r.s.d.photos, photos[i])
	}
	return nil
}

type dashboardRepo struct{ s *Store }

func (r *dashboardRepo) Totals(ctx context.Context, from, to time.Time) (*repositories.DashboardTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("dashboard.totals"); err != nil {
		return nil, err
	}
	inRange := func(t time.Time) bool { return !t.Before(from) && t.Before(to) }

	totals := &repositories.DashboardTotals{StatusCounts: map[constants.ReservationStatus]int64{}}
	for _, res := range r.s.d.reservations {
		if models.Overlaps(res.CheckIn, res.CheckOut, from, to) {
			totals.StatusCounts[res.Status]++
		}
		switch res.DepositStatus {
		case constants.DepositHeld, constants.DepositPaid, constants.DepositPartiallyRefunded:
			totals.DepositsHeld += res.DepositBalance()
		}
		if res.Status == constants.ReservationCanceled {
			continue
		}
		if inRange(res.CheckIn) {
			totals.Arrivals++
			totals.Revenue += res.TotalAmount + res.CleaningFee
			totals.CleaningFees += res.CleaningFee
		}
		if inRange(res.CheckOut) {
			totals.Departures++
		}
	}
	for _, t := range r.s.d.tasks {
		if t.Status.Open() {
			totals.OpenCleaningTasks++
		}
	}
	return totals, nil
}

func (r *dashboardRepo) Series(ctx context.Context, from, to time.Time, period constants.Period, loc *time.Location) ([]repositories.SeriesRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	buckets := map[time.Time]*repositories.SeriesRow{}
	for _, res := range r.s.d.reservations {
		if res.Status == constants.ReservationCanceled || res.CheckIn.Before(from) || !res.CheckIn.Before(to) {
			continue
		}
		key := models.TruncatePeriod(res.CheckIn, period, loc)
		row, ok := buckets[key]
		if !ok {
			row = &repositories.SeriesRow{Bucket: key}
			buckets[key] = row
		}
		row.Reservations++
		row.Revenue += res.TotalAmount + res.CleaningFee
	}
	out := make([]repositories.SeriesRow, 0, len(buckets))
	for _, row := range buckets {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket.Before(out[j].Bucket) })
	return out, nil
}
