package service

import (
	"context"
	"time"

	"github.com/yunwei-iot/ams-backend/internal/model"
	"github.com/yunwei-iot/ams-backend/internal/repository"
)

// 各资源的内存版数据访问实现，行为与数据库实现保持一致

type mockDeviceRepository struct {
	devices map[uint]*model.Device
	nextID  uint
}

func newMockDeviceRepository() *mockDeviceRepository {
	return &mockDeviceRepository{devices: make(map[uint]*model.Device), nextID: 1}
}

func (m *mockDeviceRepository) Create(ctx context.Context, device *model.Device) error {
	for _, d := range m.devices {
		if d.SN == device.SN && d.IsDeleted == model.NotDeleted {
			return repository.ErrDeviceSNExists
		}
	}
	device.ID = m.nextID
	m.nextID++
	m.devices[device.ID] = device
	return nil
}

func (m *mockDeviceRepository) GetByID(ctx context.Context, id uint) (*model.Device, error) {
	if d, ok := m.devices[id]; ok && d.IsDeleted == model.NotDeleted {
		return d, nil
	}
	return nil, repository.ErrDeviceNotFound
}

func (m *mockDeviceRepository) GetAnyByID(ctx context.Context, id uint) (*model.Device, error) {
	if d, ok := m.devices[id]; ok {
		return d, nil
	}
	return nil, repository.ErrDeviceNotFound
}

func (m *mockDeviceRepository) Update(ctx context.Context, device *model.Device) error {
	if existing, ok := m.devices[device.ID]; !ok || existing.IsDeleted == model.Deleted {
		return repository.ErrDeviceNotFound
	}
	m.devices[device.ID] = device
	return nil
}

func (m *mockDeviceRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	d, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	d.Status = status
	return nil
}

func (m *mockDeviceRepository) SetEnabled(ctx context.Context, id uint, enabled bool) error {
	d, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	d.Enabled = enabled
	return nil
}

func (m *mockDeviceRepository) SoftDelete(ctx context.Context, id uint) error {
	d, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	d.IsDeleted = model.Deleted
	return nil
}

func (m *mockDeviceRepository) List(ctx context.Context, filter *repository.DeviceFilter, page *repository.Pagination) ([]*model.Device, int64, error) {
	var result []*model.Device
	for _, d := range m.devices {
		if d.IsDeleted == model.Deleted {
			continue
		}
		result = append(result, d)
	}
	return result, int64(len(result)), nil
}

func (m *mockDeviceRepository) ListEnabled(ctx context.Context) ([]*model.Device, error) {
	var result []*model.Device
	for _, d := range m.devices {
		if d.IsDeleted == model.NotDeleted && d.Enabled {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDeviceRepository) ExistsBySN(ctx context.Context, sn string) (bool, error) {
	for _, d := range m.devices {
		if d.SN == sn && d.IsDeleted == model.NotDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockDeviceRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, d := range m.devices {
		if d.IsDeleted == model.NotDeleted {
			counts[d.Status]++
		}
	}
	return counts, nil
}

type mockAlertRepository struct {
	alerts map[uint]*model.Alert
	nextID uint
}

func newMockAlertRepository() *mockAlertRepository {
	return &mockAlertRepository{alerts: make(map[uint]*model.Alert), nextID: 1}
}

func (m *mockAlertRepository) Create(ctx context.Context, alert *model.Alert) error {
	alert.ID = m.nextID
	m.nextID++
	m.alerts[alert.ID] = alert
	return nil
}

func (m *mockAlertRepository) GetByID(ctx context.Context, id uint) (*model.Alert, error) {
	if a, ok := m.alerts[id]; ok && a.IsDeleted == model.NotDeleted {
		return a, nil
	}
	return nil, repository.ErrAlertNotFound
}

func (m *mockAlertRepository) Handle(ctx context.Context, id uint, handlerID uint) error {
	a, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Status != model.AlertUnhandled {
		return repository.ErrAlertNotFound
	}
	now := time.Now()
	a.Status = model.AlertHandled
	a.HandledBy = handlerID
	a.HandledAt = &now
	return nil
}

func (m *mockAlertRepository) SoftDelete(ctx context.Context, id uint) error {
	a, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.IsDeleted = model.Deleted
	return nil
}

func (m *mockAlertRepository) List(ctx context.Context, filter *repository.AlertFilter, page *repository.Pagination) ([]*model.Alert, int64, error) {
	var result []*model.Alert
	for _, a := range m.alerts {
		if a.IsDeleted == model.NotDeleted {
			result = append(result, a)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockAlertRepository) CountUnhandled(ctx context.Context) (int64, error) {
	var count int64
	for _, a := range m.alerts {
		if a.IsDeleted == model.NotDeleted && a.Status == model.AlertUnhandled {
			count++
		}
	}
	return count, nil
}

type mockMessageRepository struct {
	messages    map[uint]*model.Message
	projections map[uint][]*model.UserMessage // userID -> 投递行
	nextID      uint
}

func newMockMessageRepository() *mockMessageRepository {
	return &mockMessageRepository{
		messages:    make(map[uint]*model.Message),
		projections: make(map[uint][]*model.UserMessage),
		nextID:      1,
	}
}

func (m *mockMessageRepository) Send(ctx context.Context, message *model.Message, recipientIDs []uint) error {
	if len(recipientIDs) == 0 {
		return repository.ErrNoRecipients
	}
	message.ID = m.nextID
	m.nextID++
	m.messages[message.ID] = message
	for _, uid := range recipientIDs {
		m.projections[uid] = append(m.projections[uid], &model.UserMessage{
			MessageID: message.ID,
			UserID:    uid,
			Status:    model.MessageUnread,
			Message:   message,
		})
	}
	return nil
}

func (m *mockMessageRepository) GetContent(ctx context.Context, messageID uint) (*model.Message, error) {
	if msg, ok := m.messages[messageID]; ok {
		return msg, nil
	}
	return nil, repository.ErrMessageNotFound
}

func (m *mockMessageRepository) ListForUser(ctx context.Context, userID uint, filter *repository.MessageFilter, page *repository.Pagination) ([]*model.UserMessage, int64, error) {
	rows := m.projections[userID]
	return rows, int64(len(rows)), nil
}

func (m *mockMessageRepository) MarkRead(ctx context.Context, userID, messageID uint) error {
	for _, um := range m.projections[userID] {
		if um.MessageID == messageID {
			um.Status = model.MessageRead
			return nil
		}
	}
	return repository.ErrMessageNotFound
}

func (m *mockMessageRepository) DeleteForUser(ctx context.Context, userID, messageID uint) error {
	rows := m.projections[userID]
	for i, um := range rows {
		if um.MessageID == messageID {
			m.projections[userID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrMessageNotFound
}

func (m *mockMessageRepository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, um := range m.projections[userID] {
		if um.Status == model.MessageUnread {
			count++
		}
	}
	return count, nil
}

type mockWorkOrderRepository struct {
	orders map[uint]*model.WorkOrder
	nextID uint
}

func newMockWorkOrderRepository() *mockWorkOrderRepository {
	return &mockWorkOrderRepository{orders: make(map[uint]*model.WorkOrder), nextID: 1}
}

func (m *mockWorkOrderRepository) Create(ctx context.Context, order *model.WorkOrder) error {
	order.ID = m.nextID
	m.nextID++
	m.orders[order.ID] = order
	return nil
}

func (m *mockWorkOrderRepository) GetByID(ctx context.Context, id uint) (*model.WorkOrder, error) {
	if o, ok := m.orders[id]; ok && o.IsDeleted == model.NotDeleted {
		return o, nil
	}
	return nil, repository.ErrWorkOrderNotFound
}

func (m *mockWorkOrderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*model.WorkOrder, error) {
	for _, o := range m.orders {
		if o.OrderNo == orderNo && o.IsDeleted == model.NotDeleted {
			return o, nil
		}
	}
	return nil, repository.ErrWorkOrderNotFound
}

func (m *mockWorkOrderRepository) Update(ctx context.Context, order *model.WorkOrder) error {
	if existing, ok := m.orders[order.ID]; !ok || existing.IsDeleted == model.Deleted {
		return repository.ErrWorkOrderNotFound
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockWorkOrderRepository) UpdateStatus(ctx context.Context, id uint, status string, finishedAt *time.Time) error {
	o, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	o.Status = status
	if finishedAt != nil {
		o.FinishedAt = finishedAt
	}
	return nil
}

func (m *mockWorkOrderRepository) Assign(ctx context.Context, id uint, assigneeID uint) error {
	o, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	o.AssigneeID = assigneeID
	o.Status = model.OrderProcessing
	return nil
}

func (m *mockWorkOrderRepository) SoftDelete(ctx context.Context, id uint) error {
	o, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	o.IsDeleted = model.Deleted
	return nil
}

func (m *mockWorkOrderRepository) List(ctx context.Context, filter *repository.WorkOrderFilter, page *repository.Pagination) ([]*model.WorkOrder, int64, error) {
	var result []*model.WorkOrder
	for _, o := range m.orders {
		if o.IsDeleted == model.NotDeleted {
			result = append(result, o)
		}
	}
	return result, int64(len(result)), nil
}
