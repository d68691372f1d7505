package controller

import (
	"github.com/google/uuid"

	"github.com/riking/joycon/joycond/jcpc"
)

type base struct {
	id string
}

func newBase() base {
	return base{id: uuid.NewString()}
}

func (c *base) ID() string {
	return c.id
}

func owns(jc jcpc.Physical, s jcpc.Source) bool {
	if jc == nil {
		return false
	}
	for _, src := range jc.Sources() {
		if src == s {
			return true
		}
	}
	return false
}
