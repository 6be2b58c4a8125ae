// Package clinicv1 — контракт gRPC-сервиса клиники.
// Сообщения кодируются в JSON (content-subtype "json"), сгенерированный protobuf-код не нужен.
package clinicv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "clinic.v1.ClinicService"

const (
	ListAvailableSlotsMethod  = "/" + ServiceName + "/ListAvailableSlots"
	ListSlotDetailsMethod     = "/" + ServiceName + "/ListSlotDetails"
	CreateBookingMethod       = "/" + ServiceName + "/CreateBooking"
	UpdateBookingStatusMethod = "/" + ServiceName + "/UpdateBookingStatus"
	ListBookingsMethod        = "/" + ServiceName + "/ListBookings"
	BlockSlotMethod           = "/" + ServiceName + "/BlockSlot"
	UnblockSlotMethod         = "/" + ServiceName + "/UnblockSlot"
	GenerateSlotsMethod       = "/" + ServiceName + "/GenerateSlots"
	ListServicesMethod        = "/" + ServiceName + "/ListServices"
	CreateServiceMethod       = "/" + ServiceName + "/CreateService"
	UpdateServiceMethod       = "/" + ServiceName + "/UpdateService"
	DeleteServiceMethod       = "/" + ServiceName + "/DeleteService"
	ListWorkingHoursMethod    = "/" + ServiceName + "/ListWorkingHours"
	UpdateWorkingHoursMethod  = "/" + ServiceName + "/UpdateWorkingHours"
	CreateReviewMethod        = "/" + ServiceName + "/CreateReview"
	ListReviewsMethod         = "/" + ServiceName + "/ListReviews"
	ListAllReviewsMethod      = "/" + ServiceName + "/ListAllReviews"
	ApproveReviewMethod       = "/" + ServiceName + "/ApproveReview"
	DeleteReviewMethod        = "/" + ServiceName + "/DeleteReview"
)

type ClinicServiceServer interface {
	ListAvailableSlots(context.Context, *ListAvailableSlotsRequest) (*ListAvailableSlotsResponse, error)
	ListSlotDetails(context.Context, *ListSlotDetailsRequest) (*ListSlotDetailsResponse, error)
	CreateBooking(context.Context, *CreateBookingRequest) (*CreateBookingResponse, error)
	UpdateBookingStatus(context.Context, *UpdateBookingStatusRequest) (*UpdateBookingStatusResponse, error)
	ListBookings(context.Context, *ListBookingsRequest) (*ListBookingsResponse, error)
	BlockSlot(context.Context, *BlockSlotRequest) (*BlockSlotResponse, error)
	UnblockSlot(context.Context, *UnblockSlotRequest) (*UnblockSlotResponse, error)
	GenerateSlots(context.Context, *GenerateSlotsRequest) (*GenerateSlotsResponse, error)
	ListServices(context.Context, *ListServicesRequest) (*ListServicesResponse, error)
	CreateService(context.Context, *CreateServiceRequest) (*CreateServiceResponse, error)
	UpdateService(context.Context, *UpdateServiceRequest) (*UpdateServiceResponse, error)
	DeleteService(context.Context, *DeleteServiceRequest) (*DeleteServiceResponse, error)
	ListWorkingHours(context.Context, *ListWorkingHoursRequest) (*ListWorkingHoursResponse, error)
	UpdateWorkingHours(context.Context, *UpdateWorkingHoursRequest) (*UpdateWorkingHoursResponse, error)
	CreateReview(context.Context, *CreateReviewRequest) (*CreateReviewResponse, error)
	ListReviews(context.Context, *ListReviewsRequest) (*ListReviewsResponse, error)
	ListAllReviews(context.Context, *ListAllReviewsRequest) (*ListAllReviewsResponse, error)
	ApproveReview(context.Context, *ApproveReviewRequest) (*ApproveReviewResponse, error)
	DeleteReview(context.Context, *DeleteReviewRequest) (*DeleteReviewResponse, error)
}

// UnimplementedClinicServiceServer встраивается в реализацию, чтобы новые методы не ломали сборку.
type UnimplementedClinicServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedClinicServiceServer) ListAvailableSlots(context.Context, *ListAvailableSlotsRequest) (*ListAvailableSlotsResponse, error) {
	return nil, unimplemented("ListAvailableSlots")
}
func (UnimplementedClinicServiceServer) ListSlotDetails(context.Context, *ListSlotDetailsRequest) (*ListSlotDetailsResponse, error) {
	return nil, unimplemented("ListSlotDetails")
}
func (UnimplementedClinicServiceServer) CreateBooking(context.Context, *CreateBookingRequest) (*CreateBookingResponse, error) {
	return nil, unimplemented("CreateBooking")
}
func (UnimplementedClinicServiceServer) UpdateBookingStatus(context.Context, *UpdateBookingStatusRequest) (*UpdateBookingStatusResponse, error) {
	return nil, unimplemented("UpdateBookingStatus")
}
func (UnimplementedClinicServiceServer) ListBookings(context.Context, *ListBookingsRequest) (*ListBookingsResponse, error) {
	return nil, unimplemented("ListBookings")
}
func (UnimplementedClinicServiceServer) BlockSlot(context.Context, *BlockSlotRequest) (*BlockSlotResponse, error) {
	return nil, unimplemented("BlockSlot")
}
func (UnimplementedClinicServiceServer) UnblockSlot(context.Context, *UnblockSlotRequest) (*UnblockSlotResponse, error) {
	return nil, unimplemented("UnblockSlot")
}
func (UnimplementedClinicServiceServer) GenerateSlots(context.Context, *GenerateSlotsRequest) (*GenerateSlotsResponse, error) {
	return nil, unimplemented("GenerateSlots")
}
func (UnimplementedClinicServiceServer) ListServices(context.Context, *ListServicesRequest) (*ListServicesResponse, error) {
	return nil, unimplemented("ListServices")
}
func (UnimplementedClinicServiceServer) CreateService(context.Context, *CreateServiceRequest) (*CreateServiceResponse, error) {
	return nil, unimplemented("CreateService")
}
func (UnimplementedClinicServiceServer) UpdateService(context.Context, *UpdateServiceRequest) (*UpdateServiceResponse, error) {
	return nil, unimplemented("UpdateService")
}
func (UnimplementedClinicServiceServer) DeleteService(context.Context, *DeleteServiceRequest) (*DeleteServiceResponse, error) {
	return nil, unimplemented("DeleteService")
}
func (UnimplementedClinicServiceServer) ListWorkingHours(context.Context, *ListWorkingHoursRequest) (*ListWorkingHoursResponse, error) {
	return nil, unimplemented("ListWorkingHours")
}
func (UnimplementedClinicServiceServer) UpdateWorkingHours(context.Context, *UpdateWorkingHoursRequest) (*UpdateWorkingHoursResponse, error) {
	return nil, unimplemented("UpdateWorkingHours")
}
func (UnimplementedClinicServiceServer) CreateReview(context.Context, *CreateReviewRequest) (*CreateReviewResponse, error) {
	return nil, unimplemented("CreateReview")
}
func (UnimplementedClinicServiceServer) ListReviews(context.Context, *ListReviewsRequest) (*ListReviewsResponse, error) {
	return nil, unimplemented("ListReviews")
}
func (UnimplementedClinicServiceServer) ListAllReviews(context.Context, *ListAllReviewsRequest) (*ListAllReviewsResponse, error) {
	return nil, unimplemented("ListAllReviews")
}
func (UnimplementedClinicServiceServer) ApproveReview(context.Context, *ApproveReviewRequest) (*ApproveReviewResponse, error) {
	return nil, unimplemented("ApproveReview")
}
func (UnimplementedClinicServiceServer) DeleteReview(context.Context, *DeleteReviewRequest) (*DeleteReviewResponse, error) {
	return nil, unimplemented("DeleteReview")
}

// unary собирает обработчик метода по образцу protoc-gen-go-grpc.
func unary[Req, Resp any](
	name string,
	call func(ClinicServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ClinicServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ClinicServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ClinicService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClinicServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListAvailableSlots", ClinicServiceServer.ListAvailableSlots),
		unary("ListSlotDetails", ClinicServiceServer.ListSlotDetails),
		unary("CreateBooking", ClinicServiceServer.CreateBooking),
		unary("UpdateBookingStatus", ClinicServiceServer.UpdateBookingStatus),
		unary("ListBookings", ClinicServiceServer.ListBookings),
		unary("BlockSlot", ClinicServiceServer.BlockSlot),
		unary("UnblockSlot", ClinicServiceServer.UnblockSlot),
		unary("GenerateSlots", ClinicServiceServer.GenerateSlots),
		unary("ListServices", ClinicServiceServer.ListServices),
		unary("CreateService", ClinicServiceServer.CreateService),
		unary("UpdateService", ClinicServiceServer.UpdateService),
		unary("DeleteService", ClinicServiceServer.DeleteService),
		unary("ListWorkingHours", ClinicServiceServer.ListWorkingHours),
		unary("UpdateWorkingHours", ClinicServiceServer.UpdateWorkingHours),
		unary("CreateReview", ClinicServiceServer.CreateReview),
		unary("ListReviews", ClinicServiceServer.ListReviews),
		unary("ListAllReviews", ClinicServiceServer.ListAllReviews),
		unary("ApproveReview", ClinicServiceServer.ApproveReview),
		unary("DeleteReview", ClinicServiceServer.DeleteReview),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "clinic/v1/clinic.json",
}

func RegisterClinicServiceServer(s grpc.ServiceRegistrar, srv ClinicServiceServer) {
	s.RegisterService(&ClinicService_ServiceDesc, srv)
}

// ClinicServiceClient всегда отправляет запросы с JSON-кодеком.
type ClinicServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewClinicServiceClient(cc grpc.ClientConnInterface) *ClinicServiceClient {
	return &ClinicServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClinicServiceClient) ListAvailableSlots(ctx context.Context, in *ListAvailableSlotsRequest, opts ...grpc.CallOption) (*ListAvailableSlotsResponse, error) {
	return invoke[ListAvailableSlotsResponse](ctx, c.cc, ListAvailableSlotsMethod, in, opts)
}

func (c *ClinicServiceClient) ListSlotDetails(ctx context.Context, in *ListSlotDetailsRequest, opts ...grpc.CallOption) (*ListSlotDetailsResponse, error) {
	return invoke[ListSlotDetailsResponse](ctx, c.cc, ListSlotDetailsMethod, in, opts)
}

func (c *ClinicServiceClient) CreateBooking(ctx context.Context, in *CreateBookingRequest, opts ...grpc.CallOption) (*CreateBookingResponse, error) {
	return invoke[CreateBookingResponse](ctx, c.cc, CreateBookingMethod, in, opts)
}

func (c *ClinicServiceClient) UpdateBookingStatus(ctx context.Context, in *UpdateBookingStatusRequest, opts ...grpc.CallOption) (*UpdateBookingStatusResponse, error) {
	return invoke[UpdateBookingStatusResponse](ctx, c.cc, UpdateBookingStatusMethod, in, opts)
}

func (c *ClinicServiceClient) ListBookings(ctx context.Context, in *ListBookingsRequest, opts ...grpc.CallOption) (*ListBookingsResponse, error) {
	return invoke[ListBookingsResponse](ctx, c.cc, ListBookingsMethod, in, opts)
}

func (c *ClinicServiceClient) BlockSlot(ctx context.Context, in *BlockSlotRequest, opts ...grpc.CallOption) (*BlockSlotResponse, error) {
	return invoke[BlockSlotResponse](ctx, c.cc, BlockSlotMethod, in, opts)
}

func (c *ClinicServiceClient) UnblockSlot(ctx context.Context, in *UnblockSlotRequest, opts ...grpc.CallOption) (*UnblockSlotResponse, error) {
	return invoke[UnblockSlotResponse](ctx, c.cc, UnblockSlotMethod, in, opts)
}

func (c *ClinicServiceClient) GenerateSlots(ctx context.Context, in *GenerateSlotsRequest, opts ...grpc.CallOption) (*GenerateSlotsResponse, error) {
	return invoke[GenerateSlotsResponse](ctx, c.cc, GenerateSlotsMethod, in, opts)
}

func (c *ClinicServiceClient) ListServices(ctx context.Context, in *ListServicesRequest, opts ...grpc.CallOption) (*ListServicesResponse, error) {
	return invoke[ListServicesResponse](ctx, c.cc, ListServicesMethod, in, opts)
}

func (c *ClinicServiceClient) CreateService(ctx context.Context, in *CreateServiceRequest, opts ...grpc.CallOption) (*CreateServiceResponse, error) {
	return invoke[CreateServiceResponse](ctx, c.cc, CreateServiceMethod, in, opts)
}

func (c *ClinicServiceClient) UpdateService(ctx context.Context, in *UpdateServiceRequest, opts ...grpc.CallOption) (*UpdateServiceResponse, error) {
	return invoke[UpdateServiceResponse](ctx, c.cc, UpdateServiceMethod, in, opts)
}

func (c *ClinicServiceClient) DeleteService(ctx context.Context, in *DeleteServiceRequest, opts ...grpc.CallOption) (*DeleteServiceResponse, error) {
	return invoke[DeleteServiceResponse](ctx, c.cc, DeleteServiceMethod, in, opts)
}

func (c *ClinicServiceClient) ListWorkingHours(ctx context.Context, in *ListWorkingHoursRequest, opts ...grpc.CallOption) (*ListWorkingHoursResponse, error) {
	return invoke[ListWorkingHoursResponse](ctx, c.cc, ListWorkingHoursMethod, in, opts)
}

func (c *ClinicServiceClient) UpdateWorkingHours(ctx context.Context, in *UpdateWorkingHoursRequest, opts ...grpc.CallOption) (*UpdateWorkingHoursResponse, error) {
	return invoke[UpdateWorkingHoursResponse](ctx, c.cc, UpdateWorkingHoursMethod, in, opts)
}

func (c *ClinicServiceClient) CreateReview(ctx context.Context, in *CreateReviewRequest, opts ...grpc.CallOption) (*CreateReviewResponse, error) {
	return invoke[CreateReviewResponse](ctx, c.cc, CreateReviewMethod, in, opts)
}

func (c *ClinicServiceClient) ListReviews(ctx context.Context, in *ListReviewsRequest, opts ...grpc.CallOption) (*ListReviewsResponse, error) {
	return invoke[ListReviewsResponse](ctx, c.cc, ListReviewsMethod, in, opts)
}

func (c *ClinicServiceClient) ListAllReviews(ctx context.Context, in *ListAllReviewsRequest, opts ...grpc.CallOption) (*ListAllReviewsResponse, error) {
	return invoke[ListAllReviewsResponse](ctx, c.cc, ListAllReviewsMethod, in, opts)
}

func (c *ClinicServiceClient) ApproveReview(ctx context.Context, in *ApproveReviewRequest, opts ...grpc.CallOption) (*ApproveReviewResponse, error) {
	return invoke[ApproveReviewResponse](ctx, c.cc, ApproveReviewMethod, in, opts)
}

func (c *ClinicServiceClient) DeleteReview(ctx context.Context, in *DeleteReviewRequest, opts ...grpc.CallOption) (*DeleteReviewResponse, error) {
	return invoke[DeleteReviewResponse](ctx, c.cc, DeleteReviewMethod, in, opts)
}
