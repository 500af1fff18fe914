package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResourceType(t *testing.T) {
	cases := []struct {
		name string
		want ResourceType
	}{
		{"Bullet", "bullet"},
		{"  Bullet  ", "bullet"},
		{"BULLET", "bullet"},
		{"Big Bullet!", "bigbullet"},
		{"big_bullet", "bigbullet"},
		{"123Bullet", "bullet"},
		{"1a2b3", "a2b3"},
		{"Bullet2", "bullet2"},
		{"", "none"},
		{"   ", "none"},
		{"1234", "none"},
		{"!@#", "none"},
		{"子弹", "none"},
		{"子弹Bullet", "bullet"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, NewResourceType(c.name))
			// 第二次走缓存
			assert.Equal(t, c.want, NewResourceType(c.name))
		})
	}
}

func TestResourceType_Equality(t *testing.T) {
	assert.Equal(t, NewResourceType("Fire-Ball"), NewResourceType(" fireball "))
	assert.NotEqual(t, NewResourceType("fireball"), NewResourceType("fireball2"))
	assert.Equal(t, "bullet", NewResourceType("Bullet").String())
}
