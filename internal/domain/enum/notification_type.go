package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// NotificationType categorizes dashboard notifications
type NotificationType int

const (
	NotificationTypeTyreOrder      NotificationType = 0
	NotificationTypeInventory      NotificationType = 1
	NotificationTypeServiceRequest NotificationType = 2
	NotificationTypeVendor         NotificationType = 3
	NotificationTypeFeedback       NotificationType = 4
	NotificationTypeBilling        NotificationType = 5
)

func (t NotificationType) String() string {
	names := [...]string{"Tyre Order", "Inventory", "Service Request", "Vendor", "Feedback", "Billing"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Inventory"
	}
	return names[t]
}

func (t NotificationType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *NotificationType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = NotificationType(i)
		return nil
	}
	switch str {
	case "Tyre Order":
		*t = NotificationTypeTyreOrder
	case "Inventory":
		*t = NotificationTypeInventory
	case "Service Request":
		*t = NotificationTypeServiceRequest
	case "Vendor":
		*t = NotificationTypeVendor
	case "Feedback":
		*t = NotificationTypeFeedback
	case "Billing":
		*t = NotificationTypeBilling
	}
	return nil
}

func (t NotificationType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *NotificationType) Scan(value interface{}) error {
	if value == nil {
		*t = NotificationTypeInventory
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = NotificationType(v)
	case int:
		*t = NotificationType(v)
	}
	return nil
}
